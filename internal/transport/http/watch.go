package http

import (
	"net/http"

	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

type SpectatorCounter interface {
	Count() int
}

type WatchHandler struct {
	Spectators SpectatorCounter
}

func NewWatchHandler(spectators SpectatorCounter) *WatchHandler {
	return &WatchHandler{Spectators: spectators}
}

type watchStatus struct {
	Spectators int `json:"spectators"`
}

func (h *WatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, watchStatus{Spectators: h.Spectators.Count()})
}
