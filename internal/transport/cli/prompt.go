package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

// Prompt reads a human's moves line by line. It implements
// game.MoveSource; columns are typed 1-based.
type Prompt struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(in), out: out}
}

// Ask prints question and returns the trimmed answer. End of input is
// reported as io.EOF.
func (p *Prompt) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func isQuit(answer string) bool {
	switch strings.ToLower(answer) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func (p *Prompt) NextMove(ctx context.Context, g *domain.Game) (game.Choice, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.Choice{}, err
		}

		answer, err := p.Ask(fmt.Sprintf("Your turn! Choose column (1-%d): ", domain.Columns))
		if err == io.EOF {
			fmt.Fprintln(p.out, "\nEOF detected. Exiting game.")
			return game.Choice{}, game.ErrQuit
		}
		if err != nil {
			return game.Choice{}, err
		}
		if isQuit(answer) {
			return game.Choice{}, game.ErrQuit
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d, or 'quit'.\n", domain.Columns)
			continue
		}
		col := n - 1
		if col < 0 || col >= domain.Columns {
			fmt.Fprintf(p.out, "Invalid column! Please choose between 1-%d\n", domain.Columns)
			continue
		}
		return game.Choice{Column: col}, nil
	}
}
