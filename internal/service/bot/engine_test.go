package bot

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

func mustBoard(t *testing.T, rows ...string) *domain.Board {
	t.Helper()
	b, err := domain.BoardFromRows(rows)
	if err != nil {
		t.Fatalf("BoardFromRows: %v", err)
	}
	return b
}

func mustEngine(t *testing.T, piece domain.Piece, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(piece, opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// exhaustive is plain minimax without pruning, used as the reference the
// pruned search has to agree with.
func exhaustive(t *testing.T, b *domain.Board, me domain.Piece, depth int, maximizing bool) (int, int64, int) {
	t.Helper()
	them := me.Opponent()
	legal := b.LegalColumns()

	switch {
	case b.HasWinningLine(me):
		return NoColumn, WinScore, 1
	case b.HasWinningLine(them):
		return NoColumn, LossScore, 1
	case len(legal) == 0:
		return NoColumn, DrawScore, 1
	case depth == 0:
		return NoColumn, b.StaticScore(me), 1
	}

	piece := them
	best := PosInf
	if maximizing {
		piece = me
		best = NegInf
	}
	column, nodes := legal[0], 1
	for _, col := range legal {
		row, err := b.NextOpenRow(col)
		if err != nil {
			t.Fatalf("NextOpenRow: %v", err)
		}
		if err := b.DropPiece(row, col, piece); err != nil {
			t.Fatalf("DropPiece: %v", err)
		}
		_, score, n := exhaustive(t, b, me, depth-1, !maximizing)
		if err := b.UndoPiece(row, col); err != nil {
			t.Fatalf("UndoPiece: %v", err)
		}
		nodes += n
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			column = col
		}
	}
	return column, best, nodes
}

// randomPositions plays random games and keeps non-terminal positions.
func randomPositions(t *testing.T, seed int64, count int) []*domain.Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var out []*domain.Board
	for len(out) < count {
		b := domain.NewBoard()
		piece := domain.Player1
		moves := rng.Intn(30)
		for i := 0; i < moves && !b.IsTerminal(); i++ {
			legal := b.LegalColumns()
			if _, err := b.Play(legal[rng.Intn(len(legal))], piece); err != nil {
				t.Fatalf("Play: %v", err)
			}
			piece = piece.Opponent()
		}
		if !b.IsTerminal() {
			out = append(out, b)
		}
	}
	return out
}

func contains(cols []int, col int) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

func TestEmptyBoardReturnsLegalColumn(t *testing.T) {
	for _, piece := range []domain.Piece{domain.Player1, domain.Player2} {
		e := mustEngine(t, piece)
		for depth := 1; depth <= 5; depth++ {
			b := domain.NewBoard()
			d, err := e.ChooseMove(b, depth, NegInf, PosInf, true)
			if err != nil {
				t.Fatalf("depth %d: %v", depth, err)
			}
			if d.Column < 0 || d.Column >= domain.Columns || !contains(b.LegalColumns(), d.Column) {
				t.Fatalf("depth %d: column %d is not legal", depth, d.Column)
			}
		}
	}
}

func TestEmptyBoardDepthFourPlaysCenter(t *testing.T) {
	for _, piece := range []domain.Piece{domain.Player1, domain.Player2} {
		e := mustEngine(t, piece)
		d, err := e.BestMove(context.Background(), domain.NewBoard(), 4)
		if err != nil {
			t.Fatalf("BestMove: %v", err)
		}
		if d.Column != domain.CenterColumn {
			t.Fatalf("%s: expected column %d, got %d", piece, domain.CenterColumn, d.Column)
		}
		if d.Score != 8 {
			t.Fatalf("%s: expected score 8, got %d", piece, d.Score)
		}
	}
}

func TestBlocksOpponentThreat(t *testing.T) {
	// player2 threatens column 3 on the bottom row, player1 cannot win now
	rows := []string{
		".......",
		".......",
		".......",
		".......",
		"....X..",
		"OOO.XX.",
	}
	e := mustEngine(t, domain.Player1)
	for depth := 2; depth <= 4; depth++ {
		b := mustBoard(t, rows...)
		d, err := e.ChooseMove(b, depth, NegInf, PosInf, true)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if d.Column != 3 {
			t.Fatalf("depth %d: expected the blocking column 3, got %d (score %d)", depth, d.Column, d.Score)
		}
	}
}

func TestTakesImmediateWin(t *testing.T) {
	// player1 completes column 6; player2 also threatens column 3
	rows := []string{
		".......",
		".......",
		".......",
		"......X",
		"......X",
		"OOO...X",
	}
	e := mustEngine(t, domain.Player1)
	for depth := 1; depth <= 4; depth++ {
		b := mustBoard(t, rows...)
		d, err := e.ChooseMove(b, depth, NegInf, PosInf, true)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if d.Column != 6 || d.Score != WinScore {
			t.Fatalf("depth %d: expected winning column 6, got %d (score %d)", depth, d.Column, d.Score)
		}
	}
}

func TestPruningMatchesExhaustiveMinimax(t *testing.T) {
	positions := randomPositions(t, 42, 40)
	for i, b := range positions {
		for _, piece := range []domain.Piece{domain.Player1, domain.Player2} {
			e := mustEngine(t, piece)
			for depth := 1; depth <= 4; depth++ {
				wantCol, wantScore, _ := exhaustive(t, b, piece, depth, true)
				got, err := e.ChooseMove(b, depth, NegInf, PosInf, true)
				if err != nil {
					t.Fatalf("position %d depth %d: %v", i, depth, err)
				}
				if got.Column != wantCol || got.Score != wantScore {
					t.Fatalf("position %d (%s, depth %d): pruned (%d, %d), exhaustive (%d, %d)\n%s",
						i, piece, depth, got.Column, got.Score, wantCol, wantScore, b)
				}
			}
		}
	}
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	e := mustEngine(t, domain.Player1)
	b := domain.NewBoard()
	_, _, full := exhaustive(t, b, domain.Player1, 4, true)
	d, err := e.ChooseMove(b, 4, NegInf, PosInf, true)
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if d.Nodes >= full {
		t.Fatalf("expected pruning to cut the tree, visited %d of %d nodes", d.Nodes, full)
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	for i, b := range randomPositions(t, 3, 20) {
		before := *b
		e := mustEngine(t, domain.Player2)
		if _, err := e.ChooseMove(b, 4, NegInf, PosInf, true); err != nil {
			t.Fatalf("position %d: %v", i, err)
		}
		if *b != before {
			t.Fatalf("position %d: search left the board modified\n%s", i, b)
		}
	}
}

func TestFullBoardScoresDrawAtRoot(t *testing.T) {
	b := mustBoard(t,
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
		"XXOOXXO",
		"OOXXOOX",
	)
	if !b.IsTerminal() {
		t.Fatalf("full board must be terminal")
	}

	s := &search{board: b, me: domain.Player1, them: domain.Player2}
	col, score, err := s.minimax(3, NegInf, PosInf, true)
	if err != nil {
		t.Fatalf("minimax: %v", err)
	}
	if col != NoColumn || score != DrawScore {
		t.Fatalf("expected (%d, 0), got (%d, %d)", NoColumn, col, score)
	}

	e := mustEngine(t, domain.Player1)
	if _, err := e.ChooseMove(b, 3, NegInf, PosInf, true); !errors.Is(err, ErrTerminalBoard) {
		t.Fatalf("expected ErrTerminalBoard at the top level, got %v", err)
	}
}

func TestWonBoardScoresSentinels(t *testing.T) {
	b := mustBoard(t,
		".......",
		".......",
		".......",
		".......",
		".OOO...",
		".XXXX..",
	)
	for _, tt := range []struct {
		me   domain.Piece
		want int64
	}{
		{domain.Player1, WinScore},
		{domain.Player2, LossScore},
	} {
		s := &search{board: b, me: tt.me, them: tt.me.Opponent()}
		_, score, err := s.minimax(2, NegInf, PosInf, true)
		if err != nil {
			t.Fatalf("minimax: %v", err)
		}
		if score != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.me, tt.want, score)
		}
	}
}

func TestChooseMoveRejectsBadInput(t *testing.T) {
	e := mustEngine(t, domain.Player1)
	if _, err := e.ChooseMove(domain.NewBoard(), 0, NegInf, PosInf, true); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
	if _, err := e.ChooseMove(nil, 2, NegInf, PosInf, true); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
	if _, err := NewEngine(domain.Empty); !errors.Is(err, domain.ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}
}

type memoryCache struct {
	values map[string]string
	gets   int
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.sets++
	m.values[key] = value.(string)
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	m.gets++
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func TestBestMoveUsesCache(t *testing.T) {
	cache := newMemoryCache()
	e := mustEngine(t, domain.Player2, WithCache(cache, time.Minute))
	b := mustBoard(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"...X...",
	)

	first, err := e.BestMove(context.Background(), b, 3)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if first.Cached || cache.sets != 1 {
		t.Fatalf("expected a fresh search that fills the cache")
	}
	for key := range cache.values {
		if !strings.HasPrefix(key, cacheKeyPrefix) || !strings.HasSuffix(key, b.Key()) {
			t.Fatalf("unexpected cache key %q", key)
		}
	}

	second, err := e.BestMove(context.Background(), b, 3)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected the second call to be served from the cache")
	}
	if second.Column != first.Column || second.Score != first.Score {
		t.Fatalf("cached decision (%d, %d) differs from search (%d, %d)",
			second.Column, second.Score, first.Column, first.Score)
	}

	// another depth is a different question
	if d, err := e.BestMove(context.Background(), b, 2); err != nil || d.Cached {
		t.Fatalf("expected a miss for a new depth, got %+v %v", d, err)
	}
}

func TestBestMoveIgnoresMalformedCacheEntry(t *testing.T) {
	cache := newMemoryCache()
	e := mustEngine(t, domain.Player1, WithCache(cache, 0))
	b := domain.NewBoard()
	cache.values[e.cacheKey(b, 2)] = "garbage"

	d, err := e.BestMove(context.Background(), b, 2)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if d.Cached || d.Column != domain.CenterColumn {
		t.Fatalf("expected a fresh search choosing the center, got %+v", d)
	}
}

func TestBestMoveParallelMatchesSerial(t *testing.T) {
	ctx := context.Background()
	for i, b := range randomPositions(t, 11, 25) {
		for _, piece := range []domain.Piece{domain.Player1, domain.Player2} {
			e := mustEngine(t, piece)
			for depth := 1; depth <= 4; depth++ {
				before := *b
				serial, err := e.BestMove(ctx, b, depth)
				if err != nil {
					t.Fatalf("BestMove: %v", err)
				}
				parallel, err := e.BestMoveParallel(ctx, b, depth)
				if err != nil {
					t.Fatalf("BestMoveParallel: %v", err)
				}
				if serial.Column != parallel.Column || serial.Score != parallel.Score {
					t.Fatalf("position %d (%s, depth %d): serial (%d, %d), parallel (%d, %d)",
						i, piece, depth, serial.Column, serial.Score, parallel.Column, parallel.Score)
				}
				if *b != before {
					t.Fatalf("parallel search modified the caller's board")
				}
			}
		}
	}
}

func TestDepthForDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"easy", 1},
		{"Medium", 2},
		{" hard ", 4},
		{"", DefaultDepth},
	}
	for _, tt := range tests {
		got, err := DepthForDifficulty(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("DepthForDifficulty(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	if _, err := DepthForDifficulty("impossible"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}
