package http

import (
	"context"
	"net/http"
	"strings"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "staff_claims"

// AuthMiddleware validates the Bearer token and injects the staff claims
// into the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the staff claims injected by AuthMiddleware.
func ClaimsFrom(ctx context.Context) (*security.StaffClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.StaffClaims)
	return claims, ok
}

// RequireManager rejects requests whose token does not carry the manager role.
func RequireManager(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != domain.StaffRoleManager {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "manager role required"})
			return
		}
		next(w, r)
	}
}
