// Package web serves the arcade's scores as a small JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/AbdelPr0/terminal-arcade/internal/ledger"
	"github.com/AbdelPr0/terminal-arcade/internal/logging"
	"github.com/AbdelPr0/terminal-arcade/internal/registry"
	"github.com/AbdelPr0/terminal-arcade/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server exposes the ledger and the score history over HTTP.
// The ledger is required; the store may be nil, in which case history
// endpoints report 503.
type Server struct {
	ledger *ledger.Ledger
	store  *storage.Store
	logger *log.Logger
	engine *gin.Engine
}

// GameEntry describes one registered game and its best score.
type GameEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Best  int    `json:"best"`
}

// ScoreEntry is one finished game in the history.
type ScoreEntry struct {
	Rank       int       `json:"rank"`
	Score      int       `json:"score"`
	Won        bool      `json:"won"`
	Difficulty string    `json:"difficulty,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	PlayedAt   time.Time `json:"played_at"`
}

// StatsEntry aggregates the history of one game.
type StatsEntry struct {
	Game       string    `json:"game"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	PlayTimeMS int64     `json:"play_time_ms"`
	LastPlayed time.Time `json:"last_played"`
}

// NewServer builds the router. A nil logger discards output.
func NewServer(l *ledger.Ledger, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{ledger: l, store: store, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/games", s.listGames)
	api.GET("/highscores", s.highScores)
	api.GET("/highscores/:game", s.gameHighScore)
	api.GET("/scores/:game", s.gameScores)
	api.GET("/history/:game", s.gameHistory)
	api.GET("/stats", s.stats)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) listGames(c *gin.Context) {
	games := registry.List()
	out := make([]GameEntry, 0, len(games))
	for _, g := range games {
		out = append(out, GameEntry{ID: g.ID, Title: g.Title, Best: s.ledger.HighScore(g.ID)})
	}
	c.JSON(http.StatusOK, out)
}

// highScores returns the whole record, with every registered game present.
func (s *Server) highScores(c *gin.Context) {
	scores := s.ledger.All()
	for _, g := range registry.List() {
		if _, ok := scores[g.ID]; !ok {
			scores[g.ID] = 0
		}
	}
	c.JSON(http.StatusOK, scores)
}

func (s *Server) gameHighScore(c *gin.Context) {
	game, ok := knownGame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "best": s.ledger.HighScore(game)})
}

func (s *Server) gameScores(c *gin.Context) {
	s.serveEntries(c, s.store.TopScores)
}

// gameHistory lists finished games newest first.
func (s *Server) gameHistory(c *gin.Context) {
	s.serveEntries(c, s.store.RecentScores)
}

// serveEntries answers a :game?limit=N history query with entries from load.
func (s *Server) serveEntries(c *gin.Context, load func(game string, limit int) ([]storage.ScoreEntry, error)) {
	game, ok := knownGame(c)
	if !ok {
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxLimit)
	}

	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score history unavailable"})
		return
	}

	entries, err := load(game, limit)
	if err != nil {
		s.logger.Warn("cannot load scores", "game", game, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}

	out := make([]ScoreEntry, 0, len(entries))
	for i, e := range entries {
		out = append(out, ScoreEntry{
			Rank:       i + 1,
			Score:      e.Score,
			Won:        e.Won,
			Difficulty: e.Difficulty,
			DurationMS: e.Duration.Milliseconds(),
			PlayedAt:   e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "scores": out})
}

func (s *Server) stats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score history unavailable"})
		return
	}

	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Warn("cannot load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load stats"})
		return
	}

	out := make([]StatsEntry, 0, len(all))
	for _, st := range all {
		out = append(out, StatsEntry{
			Game:       st.GameID,
			Games:      st.GamesCount,
			Wins:       st.Wins,
			HighScore:  st.HighScore,
			AvgScore:   st.AvgScore,
			PlayTimeMS: st.PlayTime.Milliseconds(),
			LastPlayed: st.LastPlayed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Game < out[j].Game })
	c.JSON(http.StatusOK, out)
}

// knownGame reads the :game parameter and answers 404 for unregistered games.
func knownGame(c *gin.Context) (string, bool) {
	game := c.Param("game")
	if !registry.Exists(game) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown game %q", game)})
		return "", false
	}
	return game, true
}
