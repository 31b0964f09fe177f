package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// GameReader is the read side of the game archive.
type GameReader interface {
	GetGame(ctx context.Context, gameID string) (*domain.GameRecord, error)
	RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
}

type HistoryHandler struct {
	Games GameReader
}

func NewHistoryHandler(games GameReader) *HistoryHandler {
	return &HistoryHandler{Games: games}
}

type gameSummary struct {
	ID          string `json:"id"`
	Mode        string `json:"mode"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Outcome     string `json:"outcome"`
	Winner      string `json:"winner,omitempty"`
	MovesCount  int    `json:"movesCount"`
	DurationSec int    `json:"durationSeconds"`
	FinishedAt  string `json:"finishedAt"`
}

func summarize(rec domain.GameRecord) gameSummary {
	s := gameSummary{
		ID:          rec.GameID,
		Mode:        rec.Mode,
		Player1:     rec.Player1Name,
		Player2:     rec.Player2Name,
		Outcome:     rec.Outcome,
		MovesCount:  rec.TotalMoves(),
		DurationSec: int(rec.Duration().Seconds()),
		FinishedAt:  rec.FinishedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	switch rec.Winner {
	case domain.Player1:
		s.Winner = rec.Player1Name
	case domain.Player2:
		s.Winner = rec.Player2Name
	}
	return s
}

// ListGames serves GET /games?limit=N, newest first.
func (h *HistoryHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.Games.RecentGames(r.Context(), limit)
	if err != nil {
		log.Printf("[ARCHIVE] Failed to list games: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	history := make([]gameSummary, 0, len(games))
	for _, g := range games {
		history = append(history, summarize(g))
	}
	httputil.RespondWithJSON(w, http.StatusOK, history)
}

// GetGame serves GET /games/{id} with the full move list and final board.
func (h *HistoryHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.Games.GetGame(r.Context(), id)
	if err != nil {
		log.Printf("[ARCHIVE] Failed to load game %s: %v", id, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch game")
		return
	}
	if rec == nil {
		httputil.RespondWithError(w, http.StatusNotFound, "Game not found")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, rec)
}
