package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
)

type fakeArchive struct {
	games []domain.GameRecord
	err   error
	limit int
}

func (f *fakeArchive) GetGame(ctx context.Context, id string) (*domain.GameRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.games {
		if f.games[i].GameID == id {
			return &f.games[i], nil
		}
	}
	return nil, nil
}

func (f *fakeArchive) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.games) {
		return f.games[:limit], nil
	}
	return f.games, nil
}

type fixedCount int

func (c fixedCount) Count() int { return int(c) }

func testArchive() *fakeArchive {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &fakeArchive{games: []domain.GameRecord{
		{
			GameID: "g2", Mode: "demo", Player1Name: "AI Player 1", Player2Name: "AI Player 2",
			Winner: domain.Player1, Outcome: "won", Moves: []int{3, 3, 3, 3, 3, 2, 3},
			StartedAt: start, FinishedAt: start.Add(42 * time.Second),
		},
		{
			GameID: "g1", Mode: "interactive", Player1Name: "Human", Player2Name: "Computer",
			Outcome: "aborted", Moves: []int{3},
			StartedAt: start, FinishedAt: start.Add(time.Second),
		},
	}}
}

func serve(t *testing.T, router http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListGames(t *testing.T) {
	archive := testArchive()
	router := NewRouter(Routes{History: NewHistoryHandler(archive)})

	rec := serve(t, router, "/games", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body)
	}
	var got []gameSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || archive.limit != defaultHistoryLimit {
		t.Fatalf("got %d games with limit %d", len(got), archive.limit)
	}
	if got[0].Winner != "AI Player 1" || got[0].MovesCount != 7 || got[0].DurationSec != 42 {
		t.Errorf("summary = %+v", got[0])
	}
	if got[1].Winner != "" {
		t.Errorf("aborted game has winner %q", got[1].Winner)
	}

	serve(t, router, "/games?limit=500", nil)
	if archive.limit != maxHistoryLimit {
		t.Errorf("limit = %d, want clamp to %d", archive.limit, maxHistoryLimit)
	}

	if rec := serve(t, router, "/games?limit=-1", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: code = %d", rec.Code)
	}
}

func TestGetGame(t *testing.T) {
	router := NewRouter(Routes{History: NewHistoryHandler(testArchive())})

	rec := serve(t, router, "/games/g2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var got domain.GameRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.GameID != "g2" || len(got.Moves) != 7 {
		t.Errorf("record = %+v", got)
	}

	if rec := serve(t, router, "/games/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing: code = %d", rec.Code)
	}
}

func TestArchiveErrors(t *testing.T) {
	archive := &fakeArchive{err: errors.New("connection refused")}
	router := NewRouter(Routes{History: NewHistoryHandler(archive)})

	for _, target := range []string{"/games", "/games/g1"} {
		if rec := serve(t, router, target, nil); rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: code = %d", target, rec.Code)
		}
	}
}

func TestTokenRequiredWhenSecretSet(t *testing.T) {
	router := NewRouter(Routes{
		Status:  NewWatchHandler(fixedCount(3)),
		History: NewHistoryHandler(testArchive()),
		Secret:  "s3cret",
	})

	if rec := serve(t, router, "/watch/status", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: code = %d", rec.Code)
	}
	bad := http.Header{"Authorization": {"Bearer nope"}}
	if rec := serve(t, router, "/games", bad); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: code = %d", rec.Code)
	}

	token, err := auth.GenerateWatchToken("s3cret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	rec := serve(t, router, "/watch/status?token="+token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: code = %d", rec.Code)
	}
	var status watchStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Spectators != 3 {
		t.Errorf("spectators = %d", status.Spectators)
	}

	// health stays open
	if rec := serve(t, router, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("health: code = %d", rec.Code)
	}
}
