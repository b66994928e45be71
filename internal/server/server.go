package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"otpstore/internal/repositories"
	"otpstore/internal/services"
)

type Server struct {
	port       int
	httpServer *http.Server
	otpRepo    repositories.OTPRepository
	otpService services.OTPService
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

func NewServer(port int, otpRepo repositories.OTPRepository, otpService services.OTPService) *Server {
	s := &Server{
		port:       port,
		otpRepo:    otpRepo,
		otpService: otpService,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

// GracefulShutdown blocks until SIGINT or SIGTERM, drains the HTTP server and signals done.
func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
