package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// PrintHistory lists archived games, one per line.
func PrintHistory(w io.Writer, games []domain.GameRecord) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No archived games.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tMODE\tPLAYERS\tOUTCOME\tMOVES\tID")
	for _, g := range games {
		outcome := g.Outcome
		switch g.Winner {
		case domain.Player1:
			outcome += " (" + g.Player1Name + ")"
		case domain.Player2:
			outcome += " (" + g.Player2Name + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s vs %s\t%s\t%d\t%s\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04"),
			g.Mode, g.Player1Name, g.Player2Name, outcome, g.TotalMoves(), g.GameID)
	}
	tw.Flush()
}
