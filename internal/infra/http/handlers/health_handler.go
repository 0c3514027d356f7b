package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/webinarlab/lead-intake/internal/config"
)

type HealthHandler struct {
	Cfg       *config.Config
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		Cfg:       cfg,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Cfg.Sheets.SpreadsheetID != "" && h.Cfg.Sheets.ServiceAccountEmail != "" {
		deps["google_sheets"] = "configured"
	} else {
		deps["google_sheets"] = "not configured"
	}

	if h.Cfg.AWeber.ClientID != "" && h.Cfg.AWeber.RefreshToken != "" {
		deps["aweber"] = "configured"
	} else {
		deps["aweber"] = "not configured"
	}

	response := HealthResponse{
		Status:       "healthy",
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
