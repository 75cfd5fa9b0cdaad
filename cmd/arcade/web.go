package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/AbdelPr0/terminal-arcade/internal/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve high scores as a JSON API",
	Long: `Start an HTTP server exposing the arcade's scores.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/highscores
  GET /api/highscores/:game
  GET /api/scores/:game?limit=N
  GET /api/history/:game?limit=N
  GET /api/stats

Environment (a .env file in the working directory is loaded too):
  PORT           - Port to listen on when --addr is not given (default 8080)
  ARCADE_SCORES  - High-score record path when --scores is not given
  GIN_MODE       - Set to "release" for production logging

Examples:
  arcade web
  arcade web --addr :9000
  PORT=3000 arcade web`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "Listen address (default :$PORT or :8080)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	addr := flagWebAddr
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		addr = ":" + port
	}
	if !cmd.Flags().Changed("scores") {
		if path := os.Getenv("ARCADE_SCORES"); path != "" {
			flagScoresPath = path
		}
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger("arcade-web")
	if err != nil {
		return err
	}
	backends, err := openBackends(logger)
	if err != nil {
		return err
	}
	defer closeBackends(backends)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(backends.Ledger, backends.Store, logger).ListenAndServe(ctx, addr)
}
