package bot

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	// a forced win must beat any heuristic total at any depth
	WinScore  int64 = 100000000000000
	LossScore int64 = -10000000000000
	DrawScore int64 = 0

	NegInf int64 = math.MinInt64
	PosInf int64 = math.MaxInt64

	// NoColumn is returned by base cases, where there is no move to report.
	NoColumn = -1

	cacheKeyPrefix  = "c4:decision:"
	defaultCacheTTL = time.Hour
)

const (
	ErrTerminalBoard domain.Error = "board is already terminal"
	ErrInvalidDepth  domain.Error = "search depth must be at least 1"
	ErrInvalidBoard  domain.Error = "board is nil"
)

// Decision is the outcome of a search: the chosen column and its minimax
// score from the engine's point of view.
type Decision struct {
	Column int
	Score  int64
	Depth  int
	Nodes  int  // positions visited
	Cached bool // served from the cache without searching
}

// Cache stores finished root decisions. It matches the shape of the Redis
// wrapper in internal/repository/redis.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Engine searches on behalf of one piece, which is always the maximizing
// side. An Engine holds no per-search state and may be shared.
type Engine struct {
	piece    domain.Piece
	opponent domain.Piece
	cache    Cache // optional
	cacheTTL time.Duration
}

type Option func(*Engine)

// WithCache makes BestMove look decisions up before searching and store
// them afterwards.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = cache
		if ttl > 0 {
			e.cacheTTL = ttl
		}
	}
}

func NewEngine(piece domain.Piece, opts ...Option) (*Engine, error) {
	if !piece.IsPlayer() {
		return nil, domain.ErrInvalidPiece
	}
	e := &Engine{
		piece:    piece,
		opponent: piece.Opponent(),
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Piece() domain.Piece {
	return e.piece
}

func validateRoot(b *domain.Board, depth int) error {
	if b == nil {
		return ErrInvalidBoard
	}
	if depth < 1 {
		return fmt.Errorf("depth %d: %w", depth, ErrInvalidDepth)
	}
	if b.IsTerminal() {
		return ErrTerminalBoard
	}
	return nil
}

// ChooseMove runs minimax with alpha-beta pruning from b, depth plies
// deep. The board is modified during the search and restored before
// returning; applying the chosen move is up to the caller.
func (e *Engine) ChooseMove(b *domain.Board, depth int, alpha, beta int64, maximizing bool) (Decision, error) {
	if err := validateRoot(b, depth); err != nil {
		return Decision{Column: NoColumn}, err
	}

	s := &search{board: b, me: e.piece, them: e.opponent}
	column, score, err := s.minimax(depth, alpha, beta, maximizing)
	if err != nil {
		return Decision{Column: NoColumn}, err
	}
	return Decision{Column: column, Score: score, Depth: depth, Nodes: s.nodes}, nil
}

// BestMove is the full-window root search for the engine's own move.
func (e *Engine) BestMove(ctx context.Context, b *domain.Board, depth int) (Decision, error) {
	if err := validateRoot(b, depth); err != nil {
		return Decision{Column: NoColumn}, err
	}

	key := e.cacheKey(b, depth)
	if d, ok := e.lookup(ctx, key); ok {
		return d, nil
	}

	d, err := e.ChooseMove(b, depth, NegInf, PosInf, true)
	if err != nil {
		return d, err
	}
	e.store(ctx, key, d)
	return d, nil
}

func (e *Engine) cacheKey(b *domain.Board, depth int) string {
	return fmt.Sprintf("%s%d:%d:%s", cacheKeyPrefix, e.piece, depth, b.Key())
}

func (e *Engine) lookup(ctx context.Context, key string) (Decision, bool) {
	if e.cache == nil {
		return Decision{}, false
	}
	val, err := e.cache.Get(ctx, key)
	if err != nil || val == "" {
		return Decision{}, false
	}
	d, err := decodeDecision(val)
	if err != nil {
		log.Printf("[ENGINE] Ignoring malformed cache entry %s: %v", key, err)
		return Decision{}, false
	}
	d.Cached = true
	return d, true
}

func (e *Engine) store(ctx context.Context, key string, d Decision) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, encodeDecision(d), e.cacheTTL); err != nil {
		log.Printf("[ENGINE] Failed to cache decision: %v", err)
	}
}

// cached entries look like "column:score:depth:nodes"
func encodeDecision(d Decision) string {
	return fmt.Sprintf("%d:%d:%d:%d", d.Column, d.Score, d.Depth, d.Nodes)
}

func decodeDecision(val string) (Decision, error) {
	parts := strings.Split(val, ":")
	if len(parts) != 4 {
		return Decision{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}
	column, err := strconv.Atoi(parts[0])
	if err != nil {
		return Decision{}, err
	}
	score, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Decision{}, err
	}
	depth, err := strconv.Atoi(parts[2])
	if err != nil {
		return Decision{}, err
	}
	nodes, err := strconv.Atoi(parts[3])
	if err != nil {
		return Decision{}, err
	}
	if column < 0 || column >= domain.Columns {
		return Decision{}, fmt.Errorf("column %d: %w", column, domain.ErrInvalidColumn)
	}
	return Decision{Column: column, Score: score, Depth: depth, Nodes: nodes}, nil
}
