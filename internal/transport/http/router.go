package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

// Routes holds the handlers the spectator server can mount. Nil handlers
// are left out.
type Routes struct {
	Watch   http.Handler // WebSocket upgrade
	Status  *WatchHandler
	History *HistoryHandler
	Secret  string
}

func NewRouter(routes Routes) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	if routes.Watch != nil {
		router.Handle("/watch", routes.Watch)
	}

	api := router.NewRoute().Subrouter()
	api.Use(middleware.RequireWatchToken(routes.Secret))
	if routes.Status != nil {
		api.HandleFunc("/watch/status", routes.Status.Status).Methods(http.MethodGet)
	}
	if routes.History != nil {
		api.HandleFunc("/games", routes.History.ListGames).Methods(http.MethodGet)
		api.HandleFunc("/games/{id}", routes.History.GetGame).Methods(http.MethodGet)
	}

	return router
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
