package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/AbdelPr0/terminal-arcade/internal/games/snake"
	_ "github.com/AbdelPr0/terminal-arcade/internal/games/tetris"
	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, withStore bool) (*Server, *storage.Store) {
	t.Helper()
	l := ledger.New(ledger.NewMemoryBackend([]byte(`{"snake":120}`)), nil)

	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "scores.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}
	return NewServer(l, store, nil), store
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListGames(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := get(t, s, "/api/games")
	require.Equal(t, http.StatusOK, rec.Code)

	var games []GameEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	require.Len(t, games, 2)
	assert.Equal(t, GameEntry{ID: "snake", Title: "Snake", Best: 120}, games[0])
	assert.Equal(t, GameEntry{ID: "tetris", Title: "Tetris", Best: 0}, games[1])
}

func TestHighScores(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := get(t, s, "/api/highscores")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"snake":120,"tetris":0}`, rec.Body.String())

	rec = get(t, s, "/api/highscores/snake")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"game":"snake","best":120}`, rec.Body.String())

	rec = get(t, s, "/api/highscores/pacman")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHighScoresWithBrokenLedger(t *testing.T) {
	l := ledger.New(ledger.NewMemoryBackend([]byte("{broken")), nil)
	s := NewServer(l, nil, nil)

	rec := get(t, s, "/api/highscores")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"snake":0,"tetris":0}`, rec.Body.String())
}

func TestScores(t *testing.T) {
	s, store := newTestServer(t, true)
	for _, score := range []int{100, 300, 200} {
		_, err := store.SaveGame(storage.GameRecord{GameID: "tetris", Score: score, Difficulty: "hard", Duration: 2 * time.Second})
		require.NoError(t, err)
	}

	rec := get(t, s, "/api/scores/tetris?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Game   string       `json:"game"`
		Scores []ScoreEntry `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tetris", body.Game)
	require.Len(t, body.Scores, 2)
	assert.Equal(t, 1, body.Scores[0].Rank)
	assert.Equal(t, 300, body.Scores[0].Score)
	assert.Equal(t, 200, body.Scores[1].Score)
	assert.Equal(t, "hard", body.Scores[0].Difficulty)
	assert.Equal(t, int64(2000), body.Scores[0].DurationMS)

	rec = get(t, s, "/api/scores/snake")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"game":"snake","scores":[]}`, rec.Body.String())
}

func TestScoresErrors(t *testing.T) {
	s, _ := newTestServer(t, true)

	tests := []struct {
		path string
		code int
	}{
		{"/api/scores/pacman", http.StatusNotFound},
		{"/api/scores/snake?limit=0", http.StatusBadRequest},
		{"/api/scores/snake?limit=ten", http.StatusBadRequest},
		{"/api/history/pacman", http.StatusNotFound},
		{"/api/history/snake?limit=-1", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.code, get(t, s, tc.path).Code)
		})
	}

	noStore, _ := newTestServer(t, false)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, noStore, "/api/scores/snake").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, noStore, "/api/history/snake").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, noStore, "/api/stats").Code)
}

func TestHistoryNewestFirst(t *testing.T) {
	s, store := newTestServer(t, true)
	for _, score := range []int{100, 300, 200} {
		_, err := store.SaveScore("snake", score)
		require.NoError(t, err)
	}

	rec := get(t, s, "/api/history/snake?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Scores []ScoreEntry `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Scores, 2)
	assert.Equal(t, 200, body.Scores[0].Score)
	assert.Equal(t, 300, body.Scores[1].Score)
}

func TestStats(t *testing.T) {
	s, store := newTestServer(t, true)
	records := []storage.GameRecord{
		{GameID: "tetris", Score: 810, Duration: time.Minute},
		{GameID: "snake", Score: 100, Duration: time.Minute},
		{GameID: "snake", Score: 300, Won: true, Duration: 2 * time.Minute},
	}
	for _, r := range records {
		_, err := store.SaveGame(r)
		require.NoError(t, err)
	}

	rec := get(t, s, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []StatsEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 2)

	assert.Equal(t, "snake", stats[0].Game)
	assert.Equal(t, 2, stats[0].Games)
	assert.Equal(t, 1, stats[0].Wins)
	assert.Equal(t, 300, stats[0].HighScore)
	assert.InDelta(t, 200.0, stats[0].AvgScore, 0.001)
	assert.Equal(t, int64(180000), stats[0].PlayTimeMS)

	assert.Equal(t, "tetris", stats[1].Game)
	assert.Equal(t, 810, stats[1].HighScore)
}
