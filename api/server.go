package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pushchain/tl-lottery/app"
)

// Server exposes the lottery node over HTTP.
type Server struct {
	logger   zerolog.Logger
	server   *http.Server
	node     *app.App
	receipts ReceiptReader
	clock    TimeMachine
}

// Option configures optional Server endpoints.
type Option func(*Server)

// WithReceipts enables the receipt endpoints.
func WithReceipts(r ReceiptReader) Option {
	return func(s *Server) { s.receipts = r }
}

// WithTimeMachine enables the dev time travel endpoints.
func WithTimeMachine(tm TimeMachine) Option {
	return func(s *Server) { s.clock = tm }
}

// NewServer creates a new Server instance
func NewServer(logger zerolog.Logger, port int, node *app.App, opts ...Option) *Server {
	s := &Server{
		logger: logger.With().Str("component", "api").Logger(),
		node:   node,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("api server is nil")
	}

	startupChan := make(chan error, 1)

	go func() {
		ln, err := net.Listen("tcp", s.server.Addr)
		if err != nil {
			startupChan <- fmt.Errorf("failed to bind to address %s: %w", s.server.Addr, err)
			return
		}

		startupChan <- nil
		s.logger.Info().Str("addr", s.server.Addr).Msg("API server listening")

		err = s.server.Serve(ln)
		switch err {
		case nil:
			s.logger.Info().Msg("API server stopped normally")
		case http.ErrServerClosed:
			s.logger.Info().Msg("API server closed gracefully")
		default:
			s.logger.Error().Err(err).Msg("API server error")
		}
	}()

	select {
	case err := <-startupChan:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("server startup timeout")
	}
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
