package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

type Mode string

const (
	ModeInteractive   Mode = "interactive"
	ModePredetermined Mode = "predetermined"
	ModeDemo          Mode = "demo"
)

// Outcome is how a game run ended.
type Outcome string

const (
	OutcomeWon        Outcome = "won"
	OutcomeDraw       Outcome = "draw"
	OutcomeIncomplete Outcome = "incomplete" // scripted moves ran out
	OutcomeAborted    Outcome = "aborted"    // a player quit or the context ended
)

const (
	ErrQuit              domain.Error = "player quit"
	ErrMovesExhausted    domain.Error = "scripted moves exhausted"
	ErrSeatMismatch      domain.Error = "move source asked to play for the wrong piece"
	ErrTooManyRejections domain.Error = "too many rejected moves in a row"
)

// rejected moves allowed in a row before a game is abandoned
const maxConsecutiveRejections = 100

// Choice is a move proposed by a MoveSource.
type Choice struct {
	Column int
	Score  int64
	Scored bool // Score came from a search
}

// MoveSource supplies the moves for one side of the board.
type MoveSource interface {
	NextMove(ctx context.Context, g *domain.Game) (Choice, error)
}

// Seat is one side of a game.
type Seat struct {
	Name   string
	Source MoveSource
}

type Result struct {
	GameID     string
	Mode       Mode
	Outcome    Outcome
	Winner     domain.Piece
	WinnerName string
	Moves      []int
	Board      *domain.Board
	StartedAt  time.Time
	FinishedAt time.Time
}

// Runner plays one game between two seats and reports every step to its
// observers. Interactive, predetermined and demo games differ only in the
// move sources they seat.
type Runner struct {
	Mode      Mode
	Seats     [2]Seat // Player1, Player2
	Observers []Observer
	Delay     time.Duration // pause after each accepted move
}

func NewRunner(mode Mode, player1, player2 Seat, observers ...Observer) *Runner {
	return &Runner{
		Mode:      mode,
		Seats:     [2]Seat{player1, player2},
		Observers: observers,
	}
}

func (r *Runner) seat(p domain.Piece) Seat {
	return r.Seats[int(p)-1]
}

func (r *Runner) names() [2]string {
	return [2]string{r.Seats[0].Name, r.Seats[1].Name}
}

func (r *Runner) emit(ctx context.Context, ev Event) {
	ev.Mode = r.Mode
	ev.Players = r.names()
	ev.Time = time.Now()
	for _, o := range r.Observers {
		o.Notify(ctx, ev)
	}
}

// Play runs the game to completion. Quitting, running out of scripted
// moves and cancellation end the game early without an error; an error is
// only returned when a move source fails or the context is cancelled.
func (r *Runner) Play(ctx context.Context) (*Result, error) {
	for i, s := range r.Seats {
		if s.Source == nil {
			return nil, fmt.Errorf("seat %d has no move source", i+1)
		}
	}

	g := domain.NewGame()
	res := &Result{
		GameID:    uid.GenerateGameID(),
		Mode:      r.Mode,
		StartedAt: time.Now(),
	}

	log.Printf("[GAME] Starting %s game %s: %s vs %s", r.Mode, res.GameID, r.Seats[0].Name, r.Seats[1].Name)
	r.emit(ctx, Event{
		Type:     EventGameStart,
		GameID:   res.GameID,
		Board:    g.Board.Ints(),
		NextTurn: int(g.CurrentPlayer),
	})

	rejections := 0
	for !g.IsFinished() {
		if err := ctx.Err(); err != nil {
			r.finish(ctx, g, res, OutcomeAborted)
			return res, err
		}

		player := g.CurrentPlayer
		seat := r.seat(player)

		choice, err := seat.Source.NextMove(ctx, g)
		switch {
		case errors.Is(err, ErrQuit):
			r.finish(ctx, g, res, OutcomeAborted)
			return res, nil
		case errors.Is(err, ErrMovesExhausted):
			r.finish(ctx, g, res, OutcomeIncomplete)
			return res, nil
		case err != nil:
			r.finish(ctx, g, res, OutcomeAborted)
			return res, fmt.Errorf("%s failed to move: %w", seat.Name, err)
		}

		row, err := g.MakeMove(player, choice.Column)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidColumn) && !errors.Is(err, domain.ErrColumnFull) {
				r.finish(ctx, g, res, OutcomeAborted)
				return res, err
			}
			rejections++
			r.emit(ctx, Event{
				Type:      EventMoveRejected,
				GameID:    res.GameID,
				Player:    int(player),
				Name:      seat.Name,
				Column:    choice.Column,
				MoveCount: g.MoveCount,
				Message:   err.Error(),
			})
			if rejections >= maxConsecutiveRejections {
				r.finish(ctx, g, res, OutcomeAborted)
				return res, fmt.Errorf("%s: %w", seat.Name, ErrTooManyRejections)
			}
			continue
		}
		rejections = 0

		ev := Event{
			Type:      EventMoveMade,
			GameID:    res.GameID,
			Player:    int(player),
			Name:      seat.Name,
			Column:    choice.Column,
			Row:       row,
			Board:     g.Board.Ints(),
			MoveCount: g.MoveCount,
		}
		if !g.IsFinished() {
			ev.NextTurn = int(g.CurrentPlayer)
		}
		if choice.Scored {
			score := choice.Score
			ev.Score = &score
		}
		r.emit(ctx, ev)

		if !g.IsFinished() && r.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.Delay):
			}
		}
	}

	outcome := OutcomeDraw
	if g.Status == domain.StatusWon {
		outcome = OutcomeWon
	}
	r.finish(ctx, g, res, outcome)
	return res, nil
}

func (r *Runner) finish(ctx context.Context, g *domain.Game, res *Result, outcome Outcome) {
	res.Outcome = outcome
	res.Moves = append([]int(nil), g.Moves...)
	res.Board = g.Board.Clone()
	res.FinishedAt = time.Now()
	if outcome == OutcomeWon {
		res.Winner = g.Winner
		res.WinnerName = r.seat(g.Winner).Name
	}

	log.Printf("[GAME] Game %s finished: %s after %d moves", res.GameID, outcome, len(res.Moves))
	r.emit(ctx, Event{
		Type:      EventGameOver,
		GameID:    res.GameID,
		Board:     g.Board.Ints(),
		MoveCount: g.MoveCount,
		Moves:     res.Moves,
		Outcome:   outcome,
		Winner:    int(res.Winner),
		Name:      res.WinnerName,
	})
}
