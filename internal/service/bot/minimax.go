package bot

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// search carries the board being explored and the node count for one
// top-level call. It is never shared between goroutines.
type search struct {
	board *domain.Board
	me    domain.Piece // maximizer
	them  domain.Piece
	nodes int
}

// minimax implements the minimax algorithm with alpha-beta pruning.
// Columns are tried in ascending order and only a strictly better score
// replaces the current best, so ties go to the lowest column.
func (s *search) minimax(depth int, alpha, beta int64, maximizing bool) (int, int64, error) {
	s.nodes++

	legal := s.board.LegalColumns()
	switch {
	case s.board.HasWinningLine(s.me):
		return NoColumn, WinScore, nil
	case s.board.HasWinningLine(s.them):
		return NoColumn, LossScore, nil
	case len(legal) == 0:
		return NoColumn, DrawScore, nil
	case depth <= 0:
		return NoColumn, s.board.StaticScore(s.me), nil
	}

	column := legal[0]
	if maximizing {
		best := NegInf
		for _, col := range legal {
			score, err := s.try(col, s.me, depth-1, alpha, beta, false)
			if err != nil {
				return NoColumn, 0, err
			}
			if score > best {
				best = score
				column = col
			}
			alpha = max(alpha, best)
			if alpha >= beta {
				break // beta cutoff
			}
		}
		return column, best, nil
	}

	best := PosInf
	for _, col := range legal {
		score, err := s.try(col, s.them, depth-1, alpha, beta, true)
		if err != nil {
			return NoColumn, 0, err
		}
		if score < best {
			best = score
			column = col
		}
		beta = min(beta, best)
		if alpha >= beta {
			break // alpha cutoff
		}
	}
	return column, best, nil
}

// try plays piece into col, scores the resulting position and takes the
// piece back again, whatever happens underneath.
func (s *search) try(col int, piece domain.Piece, depth int, alpha, beta int64, maximizing bool) (score int64, err error) {
	row, err := s.board.NextOpenRow(col)
	if err != nil {
		return 0, fmt.Errorf("searching column %d: %w", col, err)
	}
	if err := s.board.DropPiece(row, col, piece); err != nil {
		return 0, fmt.Errorf("searching column %d: %w", col, err)
	}
	defer func() {
		if undoErr := s.board.UndoPiece(row, col); undoErr != nil && err == nil {
			err = undoErr
		}
	}()

	_, score, err = s.minimax(depth, alpha, beta, maximizing)
	return score, err
}
