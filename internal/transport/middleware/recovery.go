package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/transport"
)

// RecoveryMiddleware turns a panic into a 500 with the usual error body and
// failure alert headers.
func RecoveryMiddleware(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				base.Logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()),
				)
				base.HandleServiceError(w,
					internal.NewInternalError("Internal server error", fmt.Errorf("panic: %v", rec)), "")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
