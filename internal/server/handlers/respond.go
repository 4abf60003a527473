package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/pkg/api"
)

// WriteSuccess sends an envelope response with the given payload.
func WriteSuccess(w http.ResponseWriter, logger *slog.Logger, statusCode int, message string, data any) {
	writeJSON(w, logger, statusCode, api.Response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// WriteError sends an envelope response for a failure. Non-apierr
// errors surface as a generic internal error.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	apiErr := apierr.FromError(err)
	WriteErrorStatus(w, logger, apiErr.StatusCode, apiErr.Message)
}

// WriteErrorStatus sends an envelope failure with an explicit status.
func WriteErrorStatus(w http.ResponseWriter, logger *slog.Logger, statusCode int, message string) {
	writeJSON(w, logger, statusCode, api.Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, body api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
