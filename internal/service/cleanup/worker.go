package cleanup

import (
	"context"
	"log"
	"sync"
	"time"
)

type GamePruner interface {
	PruneGames(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Worker deletes archived games older than the retention period.
type Worker struct {
	Games     GamePruner
	Retention time.Duration
	Interval  time.Duration

	stop chan struct{}
	done sync.WaitGroup
}

func NewWorker(games GamePruner, retention time.Duration) *Worker {
	return &Worker{
		Games:     games,
		Retention: retention,
		Interval:  time.Hour,
	}
}

// Start runs one cleanup immediately and then every Interval until Stop.
func (w *Worker) Start() {
	w.stop = make(chan struct{})
	w.done.Add(1)
	go func() {
		defer w.done.Done()
		w.RunOnce(context.Background())

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.RunOnce(context.Background())
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	if w.stop == nil {
		return
	}
	close(w.stop)
	w.done.Wait()
	w.stop = nil
	log.Println("[CLEANUP] Background worker stopped")
}

// RunOnce prunes the archive and returns how many games were removed.
func (w *Worker) RunOnce(ctx context.Context) int64 {
	if w.Retention <= 0 {
		return 0
	}
	log.Println("[CLEANUP] Starting scheduled cleanup task...")

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	deletedCount, err := w.Games.PruneGames(ctx, w.Retention)
	if err != nil {
		log.Printf("[CLEANUP] Error pruning archived games: %v", err)
		return 0
	}
	if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d archived games older than %v", deletedCount, w.Retention)
	}
	return deletedCount
}
