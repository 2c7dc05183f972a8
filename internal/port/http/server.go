package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
)

// Server wraps the standard HTTP server with lifecycle handling.
type Server struct {
	srv             *http.Server
	log             logger.Logger
	timeoutGraceful time.Duration
}

func NewServer(log logger.Logger, port string, readTimeout, writeTimeout, timeoutGraceful time.Duration, h http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      h,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		log:             log,
		timeoutGraceful: timeoutGraceful,
	}
}

// Start blocks serving requests until Stop is called or the listener
// fails.
func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests within the graceful timeout.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.timeoutGraceful)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
