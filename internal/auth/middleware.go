package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RoleLookup resolves the caller's stored record for role checks. The token
// alone is never trusted for authorization decisions.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Middleware demands a valid bearer credential and puts the claims into the
// request context. A missing header and a bad token are reported distinctly.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on an exact role match against the user store.
// No hierarchy: admin does not pass a surveyor gate.
func RequireRole(users RoleLookup, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUser(r.Context())
			if claims == nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			user, err := users.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if user == nil || user.Role != role {
				writeAuthError(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf gates a route on the path email matching the credential email,
// so one user cannot read another's resources by guessing an identifier.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUser(r.Context())
			if claims == nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			if chi.URLParam(r, param) != claims.Email {
				writeAuthError(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUser(ctx context.Context) *Claims {
	claims, _ := ctx.Value(userContextKey).(*Claims)
	return claims
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"` + msg + `"}`))
}
