package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultAddr is the listen address of rswatch serve.
	DefaultAddr = ":8080"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// RegisterRoutes registers the API and probe routes on router.
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	v1 := router.Group("/api/v1")
	v1.GET("/snapshot", h.HandleSnapshot)
	v1.GET("/phases", h.HandlePhases)
	v1.GET("/resources/:family", h.HandleResources)

	router.GET("/healthz", h.HandleHealth)
	router.GET("/readyz", h.HandleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// NewRouter builds the gin engine serving source.
func NewRouter(source Source) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router, NewHandlers(source))
	return router
}

// Server serves the snapshot API until its context is cancelled.
type Server struct {
	addr string
	http *http.Server
	log  logr.Logger
}

// New creates a server listening on addr.
func New(addr string, source Source, log logr.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr: addr,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(source),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		log: log.WithName("server"),
	}
}

// Run listens until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.log.Info("stopped")
	return nil
}
