package handler

import (
	"net/http"
	"strings"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/service"

	"go.uber.org/zap"
)

// AuthMiddleware validates Bearer tokens and injects the caller's
// identity into the request context. The raw token travels with the
// identity so the core API client can forward it.
func AuthMiddleware(verifier *service.TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "authentication token not provided")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := domain.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated identity does not
// carry one of the allowed roles.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.IdentityFromContext(r.Context())
			if identity == nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !allowed[identity.Role] {
				logger.Warn("auth: role not permitted",
					zap.String("path", r.URL.Path),
					zap.String("role", identity.Role),
					zap.Int64("user_id", identity.UserID),
				)
				writeError(w, http.StatusForbidden, "insufficient role for this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
