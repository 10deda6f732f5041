package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
)

// Timeout bounds each request. Handlers see the deadline on their context;
// when it passes the client gets a 503 TIMEOUT envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	timeoutErr := application.NewTimeoutError()
	body, _ := json.Marshal(api.APIResponse{
		Success: false,
		Error:   &api.ErrorDetail{Code: timeoutErr.Code, Message: timeoutErr.Message},
	})

	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, string(body))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			// Overwritten by the handler's own headers when it finishes in time.
			w.Header().Set("Content-Type", "application/json")
			timeoutHandler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
