package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type GameRepository interface {
	SaveGame(ctx context.Context, rec *domain.GameRecord) error
}

// Archiver is an Observer that stores every finished game.
type Archiver struct {
	repo    GameRepository
	timeout time.Duration

	mu      sync.Mutex
	started map[string]time.Time // gameID → start
}

func NewArchiver(repo GameRepository, timeout time.Duration) *Archiver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Archiver{
		repo:    repo,
		timeout: timeout,
		started: make(map[string]time.Time),
	}
}

func (a *Archiver) Notify(ctx context.Context, ev Event) {
	switch ev.Type {
	case EventGameStart:
		a.mu.Lock()
		a.started[ev.GameID] = ev.Time
		a.mu.Unlock()
	case EventGameOver:
		a.save(ctx, ev)
	}
}

func (a *Archiver) save(ctx context.Context, ev Event) {
	a.mu.Lock()
	startedAt, ok := a.started[ev.GameID]
	delete(a.started, ev.GameID)
	a.mu.Unlock()
	if !ok {
		startedAt = ev.Time
	}

	rec := &domain.GameRecord{
		GameID:      ev.GameID,
		Mode:        string(ev.Mode),
		Player1Name: ev.Players[0],
		Player2Name: ev.Players[1],
		Winner:      domain.Piece(ev.Winner),
		Outcome:     string(ev.Outcome),
		Moves:       ev.Moves,
		Board:       ev.Board,
		StartedAt:   startedAt,
		FinishedAt:  ev.Time,
	}

	// the game is over; a cancelled parent context should not lose it
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()

	if err := a.repo.SaveGame(saveCtx, rec); err != nil {
		log.Printf("[ARCHIVE] Error saving game %s: %v", rec.GameID, err)
		return
	}
	log.Printf("[ARCHIVE] Game %s saved (%s, %d moves)", rec.GameID, rec.Outcome, rec.TotalMoves())
}
