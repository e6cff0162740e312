package auth

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// AdminAuthMiddleware requires "Authorization: Bearer <token>". An empty token leaves the
// admin routes open, which is only meant for local development.
func AdminAuthMiddleware(adminToken string) mux.MiddlewareFunc {
	if adminToken == "" {
		log.Println("WARNING: ADMIN_API_TOKEN is not configured. Admin routes are unprotected.")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if !strings.HasPrefix(header, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
