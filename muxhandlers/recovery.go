package muxhandlers

import (
	"net/http"
)

// RecoveryConfig configures the Recovery handler behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is performed.
	LogFunc func(r *http.Request, err any)
}

// Recovery wraps next, typically a *mux.Router, and recovers from panics
// raised anywhere in the dispatch chain. When a panic occurs it returns
// 500 Internal Server Error to the client and optionally invokes LogFunc.
//
// Dispatch middleware runs in sequence rather than nested, so panics can
// only be caught around the router itself.
func Recovery(next http.Handler, cfg RecoveryConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(r, err)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
