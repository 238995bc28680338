package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

const shutdownGrace = 5 * time.Second

// Server hosts the docs API on a plain net/http server with graceful
// shutdown tied to the caller's context.
type Server struct {
	httpServer *http.Server
	logger     interfaces.Logger
}

// New binds the API routes to addr.
func New(addr string, api *DocsAPI, logger interfaces.Logger) *Server {
	if logger == nil {
		logger = logging.NoOp()
	}
	mux := http.NewServeMux()
	api.Register(mux)
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
