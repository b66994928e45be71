package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"otpstore/internal/handlers"
	"otpstore/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	pm := middlewares.NewPrometheusMiddleware(s.registerer)
	r.Use(pm.Instrument)

	ch := handlers.NewCommonHandler(s.otpRepo, s.otpService)
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	return r
}
