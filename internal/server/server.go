// Package server exposes a read-only HTTP query surface over a rendered
// deck: the generated SVG files, the lexed slide data and the native scene
// description consumed by the design-tool plugin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/logger"
	"github.com/alnah/go-md2slides/internal/theme"
)

// DefaultPort is the port the plugin expects the server on.
const DefaultPort = 9876

const shutdownTimeout = 5 * time.Second

// Config wires the server to a deck.
type Config struct {
	// OutputDir holds the generated SVGs and any static files.
	OutputDir string
	// MarkdownPath is re-read on every data request so edits show up live.
	MarkdownPath string
	// Theme styles the scene endpoint.
	Theme theme.Theme
	// Layout carries the font face and brand used for scenes.
	Layout layout.Options
	// Assets provides the importer page when OutputDir has none.
	Assets assets.AssetLoader
	Logger *logger.Logger
}

// Server is the HTTP query server.
type Server struct {
	router chi.Router
	cfg    Config
	log    *logger.Logger
}

// New creates and configures the HTTP server.
func New(cfg Config) *Server {
	if cfg.Assets == nil {
		cfg.Assets = assets.NewEmbeddedLoader()
	}
	s := &Server{cfg: cfg, log: cfg.Logger}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(CORS)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/slides", s.handleListSlides)
		r.Get("/data", s.handleData)
		r.Get("/data/{index}", s.handleSlideData)
		r.Get("/scene", s.handleScene)
	})

	r.Get("/*", s.handleStatic)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.log.With("addr", ln.Addr().String()).Info("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
