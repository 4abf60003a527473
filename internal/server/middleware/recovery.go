package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/internal/server/handlers"
)

// RecoveryMiddleware intercepts panics, logs the stack trace and
// answers with a generic internal error so no details leak to clients.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)

					handlers.WriteError(w, logger, apierr.Internal())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
