package middleware

import (
	"net/http"
	"time"
)

type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics labels requests by the mux pattern they match, so path parameters
// never reach label values.
func Metrics(mux *http.ServeMux, observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			_, route := mux.Handler(r)
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTP(r.Method, route, rec.status, time.Since(start))
		})
	}
}
