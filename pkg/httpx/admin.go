package httpx

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// RequireAdminToken guards operator endpoints with a static bearer token.
// An empty token disables the endpoints entirely rather than leaving them
// open.
func RequireAdminToken(token string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				WriteError(w, http.StatusForbidden, "admin_disabled", "Admin endpoints are disabled")
				return
			}

			raw, ok := BearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(raw), []byte(token)) != 1 {
				slogx.FromContext(r.Context()).Warn("admin token rejected")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing or invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}
