package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/webinarlab/lead-intake/internal/config"
	"github.com/webinarlab/lead-intake/internal/infra/http/handlers"
	"github.com/webinarlab/lead-intake/internal/infra/http/middleware"
	"github.com/webinarlab/lead-intake/internal/infra/integration/aweber"
	"github.com/webinarlab/lead-intake/internal/infra/integration/sheets"
	"github.com/webinarlab/lead-intake/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	// 1. Integration clients
	sheetsClient := sheets.NewClient(cfg.Sheets)
	aweberClient := aweber.NewClient(cfg.AWeber)

	// 2. UseCases
	submitLeadUC := usecase.NewSubmitLeadUseCase(sheetsClient, aweberClient, cfg.CampaignTag)

	// 3. Handlers
	leadHandler := handlers.NewLeadHandler(submitLeadUC)
	healthHandler := handlers.NewHealthHandler(cfg)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	// The handler does its own method gate so non-POST gets the same 405
	// envelope as on the serverless runtime.
	r.HandleFunc("/submit-form", leadHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	logrus.Infof("🔥 Lead intake in ascolto su %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.Fatal(err)
	}
}
