// File: internal/handlers/billing_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/launchkit/launchkit/internal/middleware"
	"github.com/launchkit/launchkit/internal/services"
	"github.com/launchkit/launchkit/internal/services/billing"
)

type BillingHandler struct {
	billing billing.Provider
	logger  services.Logger
}

func NewBillingHandler(provider billing.Provider, logger services.Logger) *BillingHandler {
	return &BillingHandler{billing: provider, logger: logger}
}

// Metrics returns billing metrics for a date range. Amounts stay integer
// cents end to end.
func (h *BillingHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			writeError(w, http.StatusBadRequest, "'from' must be a YYYY-MM-DD date")
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			writeError(w, http.StatusBadRequest, "'to' must be a YYYY-MM-DD date")
			return
		}
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "'to' date is before 'from' date")
		return
	}

	metrics, err := h.billing.GetMetrics(r.Context(), userID, from, to)
	if err != nil {
		h.logger.Error("Billing metrics fetch failed", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "billing provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
