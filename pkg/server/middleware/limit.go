// Package middleware provides HTTP middleware for the sal server:
// bearer token authentication, panic recovery and an in-flight request
// limiter.
package middleware

import (
	"net/http"
)

// Limit caps the number of requests handled at once. Requests beyond
// the cap wait for a slot or fail with 503 when the client gives up.
func Limit(n int, next http.Handler) http.Handler {
	if n < 1 {
		n = 1
	}
	sem := make(chan struct{}, n)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
}
