package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/medimart/medimart/internal/apierr"
	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/server/handlers"
)

// TokenVerifier verifies access tokens. Satisfied by token.Service.
type TokenVerifier interface {
	VerifyAccess(tokenString string) (*token.Claims, error)
}

// AuthMiddleware guards a route behind a verified access token and an
// optional role allow-list. An empty role list admits any authenticated
// user. The only mutation is attaching the verified claims to the
// request context.
func AuthMiddleware(logger *slog.Logger, tokens TokenVerifier, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Historical clients send the raw token in the
			// Authorization header; a Bearer prefix is tolerated.
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
				raw = strings.TrimSpace(after)
			}
			if raw == "" {
				logger.Warn("missing Authorization header",
					"method", r.Method,
					"path", r.URL.Path)
				handlers.WriteError(w, logger, apierr.Unauthorized("You are not authorized!"))
				return
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				handlers.WriteError(w, logger, apierr.Unauthorized("You are not authorized!"))
				return
			}

			ctx := token.WithClaims(r.Context(), claims)

			if len(allowed) > 0 {
				if _, ok := allowed[claims.Role]; !ok {
					logger.Warn("role not permitted",
						"user_id", claims.UserID,
						"role", string(claims.Role),
						"path", r.URL.Path)
					handlers.WriteError(w, logger, apierr.Forbidden("Forbidden!"))
					return
				}
			}

			logger.Debug("user authenticated",
				"user_id", claims.UserID,
				"role", string(claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
