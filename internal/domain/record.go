package domain

import "time"

// GameRecord is a finished (or abandoned) game as it is archived.
type GameRecord struct {
	GameID      string    `json:"game_id"`
	Mode        string    `json:"mode"`
	Player1Name string    `json:"player1_name"`
	Player2Name string    `json:"player2_name"`
	Winner      Piece     `json:"winner"`
	Outcome     string    `json:"outcome"`
	Moves       []int     `json:"moves"`
	Board       [][]int   `json:"board"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

func (r *GameRecord) TotalMoves() int {
	return len(r.Moves)
}

func (r *GameRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
