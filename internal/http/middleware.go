package http

import (
	"context"
	"net"
	"net/http"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	rl "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http/rate_limiter"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type contextKey string

const roleKey = contextKey("role")

// AuthMiddleware validates the bearer token and puts the caller's role on
// the request context for RequireRole.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		role, _ := claims["role"].(string)
		ctx := context.WithValue(r.Context(), roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only callers whose role is at least the given one.
// Role order: cashier < manager < admin.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(roleKey).(string)
			if roleRank(role) < roleRank(minRole) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleRank(role string) int {
	switch role {
	case models.RoleCashier:
		return 1
	case models.RoleManager:
		return 2
	case models.RoleAdmin:
		return 3
	}
	return 0
}

// RateLimitMiddleware throttles by client IP. Applied to the auth routes.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
