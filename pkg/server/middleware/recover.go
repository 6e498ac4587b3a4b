package middleware

import (
	"log"
	"net/http"
)

// StatusHandlerPanic is the status sent when a handler panics. Clients
// treat 520 as "reload and retry".
const StatusHandlerPanic = 520

// Recover turns handler panics into a 520 response instead of tearing
// down the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, err)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(StatusHandlerPanic)
				_, _ = w.Write([]byte("Please Reload\r\n"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
