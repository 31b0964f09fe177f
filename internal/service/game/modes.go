package game

import (
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

const (
	HumanName    = "Human"
	ComputerName = "Computer"
	DemoName1    = "AI Player 1"
	DemoName2    = "AI Player 2"
)

// Settings configures the engine seats of the built-in modes.
type Settings struct {
	EngineDepth int
	DemoDepths  [2]int // Player1, Player2
	DemoDelay   time.Duration
	Parallel    bool
	Cache       bot.Cache // optional
	CacheTTL    time.Duration
}

func (s Settings) engineSeat(name string, piece domain.Piece, depth int) (Seat, error) {
	var opts []bot.Option
	if s.Cache != nil {
		opts = append(opts, bot.WithCache(s.Cache, s.CacheTTL))
	}
	e, err := bot.NewEngine(piece, opts...)
	if err != nil {
		return Seat{}, err
	}
	if depth < 1 {
		return Seat{}, fmt.Errorf("%s depth %d: %w", name, depth, bot.ErrInvalidDepth)
	}
	return Seat{
		Name:   name,
		Source: &EngineSource{Engine: e, Depth: depth, Parallel: s.Parallel},
	}, nil
}

// NewInteractive seats a human as X, moving first, against the engine as O.
func NewInteractive(human MoveSource, s Settings, observers ...Observer) (*Runner, error) {
	computer, err := s.engineSeat(ComputerName, domain.Player2, s.EngineDepth)
	if err != nil {
		return nil, err
	}
	return NewRunner(ModeInteractive, Seat{Name: HumanName, Source: human}, computer, observers...), nil
}

// NewPredetermined replays 0-based human columns against the engine.
func NewPredetermined(columns []int, s Settings, observers ...Observer) (*Runner, error) {
	computer, err := s.engineSeat(ComputerName, domain.Player2, s.EngineDepth)
	if err != nil {
		return nil, err
	}
	human := Seat{Name: HumanName, Source: NewScriptedSource(columns)}
	return NewRunner(ModePredetermined, human, computer, observers...), nil
}

// NewDemo pits two engines against each other, each searching for its own
// piece at its own depth.
func NewDemo(s Settings, observers ...Observer) (*Runner, error) {
	first, err := s.engineSeat(DemoName1, domain.Player1, s.DemoDepths[0])
	if err != nil {
		return nil, err
	}
	second, err := s.engineSeat(DemoName2, domain.Player2, s.DemoDepths[1])
	if err != nil {
		return nil, err
	}
	r := NewRunner(ModeDemo, first, second, observers...)
	r.Delay = s.DemoDelay
	return r, nil
}
