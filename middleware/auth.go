package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"property-listing-service/controllers"
	"property-listing-service/models"
	"property-listing-service/utils"
)

// Auth resolves the bearer token to a caller identity and stores it in the
// request context. Requests without a valid identity are rejected with 401
// before any handler runs.
func Auth(tokens *utils.JWTManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				log.Warn("missing Authorization header", "method", r.Method, "url", r.URL.Path)
				rejectUnauthorized(w, "missing Authorization header")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				log.Warn("invalid Authorization header format", "method", r.Method, "url", r.URL.Path)
				rejectUnauthorized(w, "invalid Authorization header format")
				return
			}

			claims, err := tokens.Validate(tokenParts[1])
			if err != nil {
				log.Warn("invalid or expired token", "error", err)
				rejectUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, message string) {
	controllers.WriteJSON(w, http.StatusUnauthorized, models.APIResponse{
		Success: false,
		Message: message,
	})
}
