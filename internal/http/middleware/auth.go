package middleware

import (
	"context"
	"net/http"
	"strings"

	"parkdesk/internal/service"
)

type contextKey string

const operatorIDKey contextKey = "operatorID"

// Auth validates bearer tokens and stores the operator id in the request
// context.
func Auth(tokens *service.TokenService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorIDKey, claims.OperatorID)
			next(w, r.WithContext(ctx))
		}
	}
}

// OperatorIDFromContext retrieves the authenticated operator id.
func OperatorIDFromContext(ctx context.Context) (int64, bool) {
	val := ctx.Value(operatorIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
