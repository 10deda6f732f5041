package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_PaymentCounters(t *testing.T) {
	m := metrics.New()

	m.PaymentProcessed("created", 20*time.Millisecond)
	m.PaymentProcessed("created", 30*time.Millisecond)
	m.PaymentProcessed("duplicate_transaction_reference", time.Millisecond)
	m.PaymentTransitioned(domain.StatusPending, domain.StatusProcessing)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsProcessed.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsProcessed.WithLabelValues("duplicate_transaction_reference")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentTransitions.WithLabelValues("PENDING", "PROCESSING")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ProcessDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP(http.MethodPost, "POST /api/v1/payments", http.StatusCreated, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `claimpay_http_requests_total{method="POST",route="POST /api/v1/payments",status="201"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
