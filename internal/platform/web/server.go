// Package web serves match-three sessions over HTTP. Each session owns a
// board; moves and hints are plain JSON endpoints and engine events are
// streamed to websocket subscribers.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// IdleTimeout ends sessions nobody touched for this long. Zero keeps
	// sessions until they are deleted.
	IdleTimeout time.Duration

	// AllowedOrigins is passed to the CORS middleware.
	AllowedOrigins []string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:        ":8080",
		IdleTimeout:    30 * time.Minute,
		AllowedOrigins: []string{"*"},
	}
}

// Server is the HTTP front end of the session manager.
type Server struct {
	config   ServerConfig
	sessions *Manager
	logger   *log.Logger
	router   chi.Router
	server   *http.Server
}

// NewServer creates a server whose boards default to gameCfg. store may be
// nil to run without saving results; logger may be nil for a default
// stderr logger.
func NewServer(cfg ServerConfig, gameCfg config.Match3Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "match3-web",
		})
	}

	s := &Server{
		config:   cfg,
		sessions: NewManager(gameCfg, store),
		logger:   logger,
	}
	s.router = s.routes()
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Route("/sessions", func(rr chi.Router) {
		rr.Post("/", s.createSession)
		rr.Route("/{id}", func(sr chi.Router) {
			sr.Get("/", s.getSession)
			sr.Delete("/", s.endSession)
			sr.Post("/moves", s.move)
			sr.Get("/hint", s.hint)
			sr.Get("/events", s.events)
		})
	})

	return r
}

// loggingMiddleware logs each request with its status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled or
// the server fails. Idle sessions are expired while it runs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var sweep <-chan time.Time
	if s.config.IdleTimeout > 0 {
		ticker := time.NewTicker(s.config.IdleTimeout / 2)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case err := <-errCh:
			if err != nil {
				s.logger.Error("server error", "error", err)
				return err
			}
			return nil
		case <-sweep:
			if ids := s.sessions.Expire(s.config.IdleTimeout); len(ids) > 0 {
				s.logger.Info("expired idle sessions", "count", len(ids))
			}
		case <-ctx.Done():
			s.logger.Info("shutting down...")
			return s.Shutdown()
		}
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
