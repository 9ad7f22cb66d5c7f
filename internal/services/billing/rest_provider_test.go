// File: internal/services/billing/rest_provider_test.go
package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/launchkit/internal/domain"
)

func testConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	cfg.MaxRetries = 1
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestGetMetricsDecodesIntegerCents(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "42", r.URL.Query().Get("account"))
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("from"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"from": "2026-08-01",
			"to": "2026-08-31",
			"revenue_cents": 125099,
			"refunds_cents": 500,
			"new_customers": 12,
			"active_subs": 340,
			"churned_subs": 3,
			"trialing_subs": 18,
			"failed_charges": 2
		}`))
	}))
	defer server.Close()

	provider, err := NewRESTProvider(testConfig(server.URL))
	require.NoError(t, err)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	metrics, err := provider.GetMetrics(context.Background(), 42, from, to)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(125099), metrics.Revenue)
	assert.Equal(t, domain.Cents(500), metrics.Refunds)
	assert.Equal(t, 340, metrics.ActiveSubs)
}

func TestGetMetricsRateLimitIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 3
	provider, err := NewRESTProvider(cfg)
	require.NoError(t, err)

	_, err = provider.GetMetrics(context.Background(), 1, time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)

	be, ok := err.(*BillingError)
	require.True(t, ok)
	assert.Equal(t, ErrTypeRateLimit, be.Type)
	assert.Equal(t, 1, calls)
}

func TestGetMetricsRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"revenue_cents": 100}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 3
	provider, err := NewRESTProvider(cfg)
	require.NoError(t, err)

	metrics, err := provider.GetMetrics(context.Background(), 1, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(100), metrics.Revenue)
	assert.Equal(t, 3, calls)
}

func TestNewRESTProviderRequiresAPIKey(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	_, err := NewRESTProvider(cfg)
	require.Error(t, err)

	be, ok := err.(*BillingError)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConfig, be.Type)
}
