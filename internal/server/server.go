// Package server implements the familytree HTTP API.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// Server serves the people, relationship and chart endpoints for one
// store.
type Server struct {
	store     store.Store
	runner    *pipeline.Runner
	publisher events.Publisher
	logger    *log.Logger
	timeout   time.Duration
	layout    pipeline.Options // base layout options for chart endpoints
	cache     cache.Cache
}

// Option configures a Server.
type Option func(*Server)

// WithPublisher sets the publisher that receives change events.
func WithPublisher(p events.Publisher) Option { return func(s *Server) { s.publisher = p } }

// WithCache sets the layout and artifact cache.
func WithCache(c cache.Cache) Option { return func(s *Server) { s.cache = c } }

// WithLogger sets the request and event logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithLayout sets the layout options applied to every chart request.
func WithLayout(o pipeline.Options) Option { return func(s *Server) { s.layout = o } }

// New returns a server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:     st,
		publisher: &events.NoopPublisher{},
		logger:    log.Default(),
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.runner = pipeline.NewRunner(st, s.cache, nil, s.logger)
	return s
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// publish sends an event and logs, rather than returns, a failure: the
// mutation it reports has already been committed.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		log.FromContext(ctx).Warn("failed to publish event", "topic", topic, "err", err)
	}
}
