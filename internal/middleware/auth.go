package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/goaltracker/internal/ctxkeys"
	"github.com/templui/goaltracker/internal/handler"
	"github.com/templui/goaltracker/internal/service"
)

// TokenVerifier is satisfied by service.AdminAuthService.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAdmin rejects requests without a valid admin bearer token and puts
// the token subject into the context.
func RequireAdmin(verifier TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handler.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
				return
			}

			subject, err := verifier.Verify(token)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrAuthNotConfigured):
				handler.WriteError(w, http.StatusServiceUnavailable, "AUTH_NOT_CONFIGURED", "Admin API is disabled")
				return
			case errors.Is(err, jwt.ErrTokenExpired):
				handler.WriteError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token expired")
				return
			case errors.Is(err, service.ErrNotAdmin):
				handler.WriteError(w, http.StatusForbidden, "FORBIDDEN", "Admin role required")
				return
			default:
				slog.Warn("rejected admin token", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
				handler.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
				return
			}

			next(w, r.WithContext(ctxkeys.WithAdmin(r.Context(), subject)))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}
