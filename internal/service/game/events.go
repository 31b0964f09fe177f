package game

import (
	"context"
	"time"
)

type EventType string

const (
	EventGameStart    EventType = "game_start"
	EventMoveMade     EventType = "move_made"
	EventMoveRejected EventType = "move_rejected"
	EventGameOver     EventType = "game_over"
)

// Event is what a Runner reports to its observers. It doubles as the JSON
// message sent to spectators.
type Event struct {
	Type      EventType `json:"type"`
	GameID    string    `json:"gameId"`
	Mode      Mode      `json:"mode,omitempty"`
	Players   [2]string `json:"players"`
	Player    int       `json:"player,omitempty"`
	Name      string    `json:"name,omitempty"`
	Column    int       `json:"column"`
	Row       int       `json:"row"`
	Score     *int64    `json:"score,omitempty"`
	Board     [][]int   `json:"board,omitempty"`
	NextTurn  int       `json:"nextTurn,omitempty"`
	MoveCount int       `json:"moveCount"`
	Moves     []int     `json:"moves,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Winner    int       `json:"winner,omitempty"`
	Message   string    `json:"message,omitempty"`
	Time      time.Time `json:"time"`
}

// Observer receives every event of a game in order. Implementations must
// not block for long; the game waits for Notify to return.
type Observer interface {
	Notify(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Notify(ctx context.Context, ev Event) {
	f(ctx, ev)
}
