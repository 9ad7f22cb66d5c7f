// File: internal/services/billing/rest_provider.go
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/launchkit/launchkit/internal/domain"
)

// RESTProvider queries the hosted billing API over HTTPS. Responses carry
// amounts as integer cents and are decoded straight into domain types with
// no float conversion anywhere in between.
type RESTProvider struct {
	config *Config
	client *http.Client
}

func NewRESTProvider(config *Config) (*RESTProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	return &RESTProvider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type metricsResponse struct {
	From          string `json:"from"`
	To            string `json:"to"`
	RevenueCents  int64  `json:"revenue_cents"`
	RefundsCents  int64  `json:"refunds_cents"`
	NewCustomers  int    `json:"new_customers"`
	ActiveSubs    int    `json:"active_subs"`
	ChurnedSubs   int    `json:"churned_subs"`
	TrialingSubs  int    `json:"trialing_subs"`
	FailedCharges int    `json:"failed_charges"`
}

func (p *RESTProvider) GetMetrics(ctx context.Context, userID uint, from, to time.Time) (*domain.BillingMetrics, error) {
	const op = "get metrics"

	endpoint := fmt.Sprintf("%s/metrics?%s", p.config.BaseURL, url.Values{
		"account": {fmt.Sprintf("%d", userID)},
		"from":    {from.Format("2006-01-02")},
		"to":      {to.Format("2006-01-02")},
	}.Encode())

	var resp metricsResponse
	err := withRetry(ctx, p.config.MaxRetries, p.config.RetryDelay, func() error {
		return p.doRequest(ctx, op, endpoint, &resp)
	})
	if err != nil {
		return nil, err
	}

	return &domain.BillingMetrics{
		From:          from,
		To:            to,
		Revenue:       domain.Cents(resp.RevenueCents),
		Refunds:       domain.Cents(resp.RefundsCents),
		NewCustomers:  resp.NewCustomers,
		ActiveSubs:    resp.ActiveSubs,
		ChurnedSubs:   resp.ChurnedSubs,
		TrialingSubs:  resp.TrialingSubs,
		FailedCharges: resp.FailedCharges,
	}, nil
}

func (p *RESTProvider) doRequest(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewProviderError(op, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return NewProviderError(op, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(op)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return NewProviderError(op, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewProviderError(op, "failed to decode response", err)
	}
	return nil
}
