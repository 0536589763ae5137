package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"webstore/internal/config"
	"webstore/internal/logging"
	"webstore/internal/storage"
)

type Server struct {
	engine *gin.Engine
	store  *storage.Store
	cfg    config.ServerConfig
	logger logging.Logger
}

func New(cfg config.ServerConfig, store *storage.Store) (*Server, error) {
	templates, err := newTemplates()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	// "/download" without a slash is a regular resource, not a redirect
	engine.RedirectTrailingSlash = false

	srv := &Server{
		engine: engine,
		store:  store,
		cfg:    cfg,
		logger: logging.GetLogger("server"),
	}

	engine.Use(requestID(), requestLogger(srv.logger), gin.Recovery())
	engine.SetHTMLTemplate(templates)

	engine.GET("/", srv.handleIndex)
	engine.GET("/download/*path", srv.handleDownload)
	engine.NoRoute(srv.handleResource)

	return srv, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	s.logger.Info().
		Str("addr", listener.Addr().String()).
		Str("root", s.store.Root()).
		Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Dur("timeout", s.cfg.ShutdownTimeout).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
