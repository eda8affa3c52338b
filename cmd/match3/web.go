package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	gamepkg "github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/web"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagWebAddr        string
	flagWebIdleTimeout int
	flagWebOrigins     []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/websocket API",
	Long: `Start an HTTP server that hosts match-three sessions.

Endpoints:
  POST   /sessions              - New board {width,height,kinds,seed}
  GET    /sessions/{id}         - Board and score
  POST   /sessions/{id}/moves   - Swap {from:{row,col},to:{row,col}}
  GET    /sessions/{id}/hint    - Legal moves
  DELETE /sessions/{id}         - End session and save its score
  GET    /sessions/{id}/events  - Websocket stream of match and refill events

Examples:
  match3 web
  match3 web --addr 127.0.0.1:9000 --origins http://localhost:3000`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagWebIdleTimeout, "idle-timeout", 30, "Minutes before an untouched session is ended (0 = never)")
	webCmd.Flags().StringSliceVar(&flagWebOrigins, "origins", []string{"*"}, "Allowed CORS origins")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newLogger("match3-web")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("running without score storage", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := web.ServerConfig{
		Address:        flagWebAddr,
		IdleTimeout:    time.Duration(flagWebIdleTimeout) * time.Minute,
		AllowedOrigins: flagWebOrigins,
	}
	server := web.NewServer(cfg, gamepkg.Config(), store, logger)

	ctx, stop := signalContext()
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
