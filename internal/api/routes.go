package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	r.HandleFunc("/webhook", handler.Webhook).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
