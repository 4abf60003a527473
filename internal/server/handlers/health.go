package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	logger  *slog.Logger
	version string
	pinger  interface{ Ping() error }
}

// NewHealthHandler creates the health handler. pinger is typically the
// underlying database connection.
func NewHealthHandler(logger *slog.Logger, version string, pinger interface{ Ping() error }) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
		pinger:  pinger,
	}
}

// HealthData is the data payload of the health check.
type HealthData struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			h.logger.Error("health check failed", slog.Any("error", err))
			WriteErrorStatus(w, h.logger, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	WriteSuccess(w, h.logger, http.StatusOK, "", HealthData{
		Status:  "ok",
		Version: h.version,
	})
}
