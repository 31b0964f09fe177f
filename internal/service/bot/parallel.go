package bot

import (
	"context"
	"sync"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type rootResult struct {
	score int64
	nodes int
	err   error
}

// BestMoveParallel searches every root column in its own goroutine, each
// on a private copy of the board with a full window. The reduction keeps
// the ascending tie-break, so the result matches BestMove.
func (e *Engine) BestMoveParallel(ctx context.Context, b *domain.Board, depth int) (Decision, error) {
	if err := validateRoot(b, depth); err != nil {
		return Decision{Column: NoColumn}, err
	}

	key := e.cacheKey(b, depth)
	if d, ok := e.lookup(ctx, key); ok {
		return d, nil
	}
	if err := ctx.Err(); err != nil {
		return Decision{Column: NoColumn}, err
	}

	legal := b.LegalColumns()
	results := make([]rootResult, len(legal))

	var wg sync.WaitGroup
	for i, col := range legal {
		wg.Add(1)
		go func(i, col int) {
			defer wg.Done()
			s := &search{board: b.Clone(), me: e.piece, them: e.opponent}
			score, err := s.try(col, e.piece, depth-1, NegInf, PosInf, false)
			results[i] = rootResult{score: score, nodes: s.nodes, err: err}
		}(i, col)
	}
	wg.Wait()

	d := Decision{Column: legal[0], Score: NegInf, Depth: depth, Nodes: 1}
	for i, r := range results {
		if r.err != nil {
			return Decision{Column: NoColumn}, r.err
		}
		d.Nodes += r.nodes
		if r.score > d.Score {
			d.Score = r.score
			d.Column = legal[i]
		}
	}

	e.store(ctx, key, d)
	return d, nil
}
