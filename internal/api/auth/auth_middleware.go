package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/centung-app/auth-api/internal/api"
	"github.com/centung-app/auth-api/internal/types"
)

// Define typed context keys
type contextKey string

const ClaimsKey contextKey = "authClaims"

// Authenticate is middleware to validate bearer tokens. It accepts both
// "Bearer <token>" and a bare token in the Authorization header, and
// attaches the decoded claims to the request context on success.
func Authenticate(logger *slog.Logger, verifier *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization token required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the claims attached by Authenticate.
func GetClaimsFromContext(ctx context.Context) (*types.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*types.Claims)
	return claims, ok
}
