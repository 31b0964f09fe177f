package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

const rule = "============================="

// Renderer prints games as text. It implements game.Observer.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// DrawBoard writes the bordered grid with 1-based column numbers.
func DrawBoard(w io.Writer, board [][]int) {
	var sb strings.Builder
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("  1   2   3   4   5   6   7\n")
	sb.WriteString(rule + "\n")
	for _, row := range board {
		sb.WriteString("|")
		for _, v := range row {
			sb.WriteString(" " + domain.Piece(v).Symbol() + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(rule + "\n")
	io.WriteString(w, sb.String())
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) Notify(ctx context.Context, ev game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Type {
	case game.EventGameStart:
		r.intro(ev)
		DrawBoard(r.out, ev.Board)

	case game.EventMoveMade:
		if ev.Score != nil {
			r.printf("%s chose column %d (score: %d)\n", ev.Name, ev.Column+1, *ev.Score)
		} else {
			r.printf("%s plays column %d\n", ev.Name, ev.Column+1)
		}
		DrawBoard(r.out, ev.Board)

	case game.EventMoveRejected:
		if ev.Mode == game.ModeInteractive {
			r.printf("Column %d is full! Try another column.\n", ev.Column+1)
		} else {
			r.printf("Invalid move: column %d (%s)\n", ev.Column+1, ev.Message)
		}

	case game.EventGameOver:
		r.outro(ev)
	}
}

func (r *Renderer) intro(ev game.Event) {
	switch ev.Mode {
	case game.ModeInteractive:
		r.printf("Welcome to Connect Four!\n")
		r.printf("You are X and the computer is O\n")
		r.printf("Choose a column (1-7) to drop your piece\n")
		r.printf("Type 'quit' to exit the game\n")
	case game.ModePredetermined:
		r.printf("Playing predetermined game...\n")
	case game.ModeDemo:
		r.printf("Running AI vs AI demonstration...\n")
	default:
		r.printf("%s vs %s\n", ev.Players[0], ev.Players[1])
	}
}

func (r *Renderer) outro(ev game.Event) {
	switch ev.Outcome {
	case game.OutcomeWon:
		r.printf("%s (%s) wins!\n", ev.Name, domain.Piece(ev.Winner).Symbol())
	case game.OutcomeDraw:
		r.printf("It's a draw! The board is full.\n")
	case game.OutcomeIncomplete:
		r.printf("Predetermined moves exhausted. Game incomplete.\n")
	case game.OutcomeAborted:
		r.printf("Thanks for playing!\n")
	}
}
