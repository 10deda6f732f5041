package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/claimpay/internal/api"
	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/cache"
	"github.com/DanielPopoola/claimpay/internal/interfaces/rest"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*cache.CachedResponse, error)
	Save(ctx context.Context, key string, response *cache.CachedResponse) error
	Lock(ctx context.Context, key string) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// Idempotency replays the stored response of a POST retried with the same
// Idempotency-Key. Requests without the header pass through untouched.
// When the store is unreachable requests are served without replay; the
// unique transaction reference still rejects duplicates.
func Idempotency(store IdempotencyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				rest.WriteError(w, application.NewValidationError(err))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			hash := requestHash(r, body)
			log := logger.With("idempotency_key", key, "request_id", RequestIDFromContext(ctx))

			replayed, err := replay(ctx, store, w, key, hash)
			if err != nil {
				log.Warn("idempotency store unavailable, serving without replay", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if replayed {
				return
			}

			token, acquired, err := store.Lock(ctx, key)
			if err != nil {
				log.Warn("idempotency store unavailable, serving without replay", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				rest.WriteError(w, application.NewRequestInProgressError())
				return
			}
			defer func() {
				if err := store.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
					log.Warn("failed to release idempotency lock", "error", err)
				}
			}()

			// A request holding the lock may have finished between the first
			// lookup and our Lock.
			if replayed, err = replay(ctx, store, w, key, hash); err == nil && replayed {
				return
			}

			rec := newBodyRecorder(w)
			next.ServeHTTP(rec, r)

			if !storable(rec.status, rec.body.Bytes()) {
				return
			}
			err = store.Save(context.WithoutCancel(ctx), key, &cache.CachedResponse{
				StatusCode:  rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        json.RawMessage(rec.body.Bytes()),
				RequestHash: hash,
			})
			if err != nil {
				log.Warn("failed to store idempotent response", "error", err)
			}
		})
	}
}

// replay writes the cached response for key, or the mismatch error when the
// key was first used with a different request. It reports whether anything
// was written.
func replay(ctx context.Context, store IdempotencyStore, w http.ResponseWriter, key, hash string) (bool, error) {
	cached, err := store.Get(ctx, key)
	if err != nil || cached == nil {
		return false, err
	}

	if cached.RequestHash != hash {
		rest.WriteError(w, application.NewIdempotencyMismatchError())
		return true, nil
	}

	if cached.ContentType != "" {
		w.Header().Set("Content-Type", cached.ContentType)
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
	return true, nil
}

// storable reports whether a response is final for its key. Server errors and
// transient failures are left out so a retry runs the request again.
func storable(status int, body []byte) bool {
	if status >= http.StatusInternalServerError || status == http.StatusRequestTimeout {
		return false
	}

	var envelope api.APIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false
	}
	if envelope.Error == nil {
		return true
	}
	switch envelope.Error.Code {
	case application.ErrCodeTimeout, application.ErrCodeRequestInProgress:
		return false
	}
	return true
}

func requestHash(r *http.Request, body []byte) string {
	h := sha256.New()
	h.Write([]byte(r.Method))
	h.Write([]byte{0})
	h.Write([]byte(r.URL.Path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
