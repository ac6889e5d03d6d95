// Package middleware assembles the API middleware stack.
package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/mcoot/protocasual/internal/api/apierr"
	"github.com/mcoot/protocasual/internal/middleware"
)

// Recovery turns a handler panic into a JSON internal error
func Recovery(logger *slog.Logger) mux.MiddlewareFunc {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Stack returns the middleware every state-touching route runs behind, outermost first.
// Requests are logged, panics recovered, and service access serialized on app.
func Stack(logger *slog.Logger, app sync.Locker) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		Recovery(logger),
		middleware.Logging(logger),
		middleware.Serialize(app),
	}
}
