package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

// EngineSource asks the search engine for a move at a fixed depth.
type EngineSource struct {
	Engine   *bot.Engine
	Depth    int
	Parallel bool
}

func (s *EngineSource) NextMove(ctx context.Context, g *domain.Game) (Choice, error) {
	if g.CurrentPlayer != s.Engine.Piece() {
		return Choice{}, fmt.Errorf("engine plays %s, %s to move: %w", s.Engine.Piece(), g.CurrentPlayer, ErrSeatMismatch)
	}

	start := time.Now()
	var (
		d   bot.Decision
		err error
	)
	if s.Parallel {
		d, err = s.Engine.BestMoveParallel(ctx, g.Board, s.Depth)
	} else {
		d, err = s.Engine.BestMove(ctx, g.Board, s.Depth)
	}
	if err != nil {
		return Choice{}, err
	}

	log.Printf("[ENGINE] %s depth=%d column=%d score=%d nodes=%d cached=%t took=%s",
		s.Engine.Piece(), d.Depth, d.Column, d.Score, d.Nodes, d.Cached, time.Since(start))
	return Choice{Column: d.Column, Score: d.Score, Scored: true}, nil
}

// ScriptedSource replays a fixed list of 0-based columns. Every entry is
// used once, even when the game rejects it.
type ScriptedSource struct {
	moves []int
	next  int
}

func NewScriptedSource(columns []int) *ScriptedSource {
	return &ScriptedSource{moves: append([]int(nil), columns...)}
}

func (s *ScriptedSource) NextMove(ctx context.Context, g *domain.Game) (Choice, error) {
	if s.next >= len(s.moves) {
		return Choice{}, ErrMovesExhausted
	}
	col := s.moves[s.next]
	s.next++
	return Choice{Column: col}, nil
}

func (s *ScriptedSource) Remaining() int {
	return len(s.moves) - s.next
}
