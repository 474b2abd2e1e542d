// Package server exposes a hypergraph engine over HTTP.
//
// Documents are read from and saved to a [storage.Store]. One document is
// live at a time; drag requests mutate it and every resulting visual update
// is streamed to subscribers of GET /events as server-sent events.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hypergraph/pkg/cache"
	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/pipeline"
	"github.com/matzehuels/hypergraph/pkg/render"
	"github.com/matzehuels/hypergraph/pkg/storage"
)

const (
	DefaultAddr      = ":8443"
	DefaultHeartbeat = 15 * time.Second

	DefaultPreviewCacheSize = 32 << 20

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr             string
	Engine           engine.Options
	Store            storage.Store
	Logger           *log.Logger
	Heartbeat        time.Duration
	SubscriberBuffer int
	// PreviewCacheSize bounds the in-memory cache of stored-document
	// previews, in bytes. Zero selects DefaultPreviewCacheSize.
	PreviewCacheSize int
	// AllowedOrigins enables CORS for browser hosts served from another
	// origin. Empty disables CORS handling.
	AllowedOrigins []string
}

// Server owns one engine, its scene and the event broker.
type Server struct {
	addr      string
	store     storage.Store
	logger    *log.Logger
	heartbeat time.Duration
	origins   []string

	engine *engine.Engine
	scene  *render.Scene
	broker *Broker

	mu   sync.Mutex
	name string // live document name

	previewSize int
	previewOnce sync.Once
	preview     *pipeline.Runner
}

// New creates a server. Store is required.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server requires a document store")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}
	if cfg.PreviewCacheSize <= 0 {
		cfg.PreviewCacheSize = DefaultPreviewCacheSize
	}
	if cfg.Engine.Logger == nil {
		cfg.Engine.Logger = cfg.Logger
	}

	s := &Server{
		addr:      cfg.Addr,
		store:     cfg.Store,
		logger:    cfg.Logger,
		heartbeat: cfg.Heartbeat,
		origins:   cfg.AllowedOrigins,

		scene:       render.NewScene(),
		broker:      NewBroker(cfg.SubscriberBuffer, cfg.Logger),
		previewSize: cfg.PreviewCacheSize,
	}
	s.engine = engine.New(engine.Hosts(s.scene, s.broker), cfg.Engine)
	return s, nil
}

// Engine returns the server's engine.
func (s *Server) Engine() *engine.Engine { return s.engine }

// Broker returns the server's event broker.
func (s *Server) Broker() *Broker { return s.broker }

// previews returns the runner used to render stored documents without
// loading them. Its cache is allocated on first use.
func (s *Server) previews() *pipeline.Runner {
	s.previewOnce.Do(func() {
		s.preview = pipeline.NewRunner(cache.NewMemoryCache(s.previewSize), nil, s.logger)
	})
	return s.preview
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if len(s.origins) > 0 {
		r.Use(s.cors())
	}
	r.Use(compressor().Handler)
	s.routes(r)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", s.addr)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// Event streams never finish on their own.
		s.broker.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close disconnects subscribers and releases the store.
func (s *Server) Close() error {
	s.broker.Close()
	return s.store.Close()
}

// LoadDocument reads name from the store and makes it the live document.
// Subscribers receive a reset event followed by the new scene.
func (s *Server) LoadDocument(ctx context.Context, name string) ([]hypergraph.Warning, error) {
	raw, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	d, warnings, err := hypergraph.Parse(raw)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("skipping entity", "document", name, "entity", w.Entity, "ref", w.Ref, "reason", errors.UserMessage(w.Err))
	}

	// A failed parse leaves the previous document live. The engine resets
	// the scene and the broker while no pass can publish.
	s.engine.LoadDocument(d)
	s.setDocumentName(name)
	s.logger.Info("document loaded", "name", name, "generation", s.engine.Generation(), "warnings", len(warnings))
	return warnings, nil
}

func (s *Server) documentName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Server) setDocumentName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}
