package middleware

import (
	"net/http"
	"sync"
)

// Serialize runs one request at a time under l. The core services are not
// safe for concurrent use, and net/http serves each request on its own goroutine.
func Serialize(l sync.Locker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.Lock()
			defer l.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
