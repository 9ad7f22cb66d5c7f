// File: internal/domain/money_test.go
package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsMajor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cents Cents
		want  float64
	}{
		{"zero", 0, 0},
		{"whole dollars", 1500, 15},
		{"with remainder", 1999, 19.99},
		{"negative", -250, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cents.Major())
		})
	}
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "19.99", Cents(1999).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-2.50", Cents(-250).String())
}

func TestBillingMetricsJSONKeepsIntegerCents(t *testing.T) {
	t.Parallel()

	m := BillingMetrics{Revenue: 123456, Refunds: 789}
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(123456), decoded["revenue_cents"])
	assert.Equal(t, float64(789), decoded["refunds_cents"])
}
