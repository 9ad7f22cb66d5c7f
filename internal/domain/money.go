// File: internal/domain/money.go
package domain

import (
	"fmt"
	"time"
)

// Cents is a monetary amount in integer minor units. Every amount crossing
// the billing boundary is Cents; conversion to major units happens only
// through Major or String, never by ad hoc division at call sites.
type Cents int64

// Major converts the amount to major units for display.
func (c Cents) Major() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Major())
}

// BillingMetrics are the aggregate business metrics for one user over a date
// range. Monetary fields are integer cents.
type BillingMetrics struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Revenue       Cents     `json:"revenue_cents"`
	Refunds       Cents     `json:"refunds_cents"`
	NewCustomers  int       `json:"new_customers"`
	ActiveSubs    int       `json:"active_subscriptions"`
	ChurnedSubs   int       `json:"churned_subscriptions"`
	TrialingSubs  int       `json:"trialing_subscriptions"`
	FailedCharges int       `json:"failed_charges"`
}
