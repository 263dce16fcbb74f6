// Package http pkg/http/middleware.go
package http

import (
	"net/http"
	"strconv"

	"github.com/onyxlabs/onyx/pkg/models"
)

// CommonMiddleware applies the configured CORS policy and answers preflight
// requests. An empty origin list allows any origin.
func CommonMiddleware(cors models.CORSConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin(cors, origin))
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600") // Cache preflight for 1 hour
			w.Header().Set("Access-Control-Allow-Credentials", strconv.FormatBool(cors.AllowCredentials))

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allowedOrigin(cors models.CORSConfig, origin string) string {
	if len(cors.AllowedOrigins) == 0 {
		return "*"
	}

	for _, allowed := range cors.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return allowed
		}
	}

	return cors.AllowedOrigins[0]
}
