package server

import (
	"context"
	"net/http"

	"github.com/avagyan/studgroups/internal/handler"
	"github.com/sirupsen/logrus"
)

type Server struct {
	handler *handler.Handler
	server  *http.Server
	log     *logrus.Logger
}

func NewServer(h *handler.Handler, addr string, log *logrus.Logger) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)

	return &Server{
		handler: h,
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("server starting")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
