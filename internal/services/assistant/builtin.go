// File: internal/services/assistant/builtin.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/note"
	"github.com/launchkit/launchkit/internal/services/billing"
)

const metricsDateLayout = "2006-01-02"

// NewRevenueMetricsTool exposes billing metrics to the model. All money
// fields are integer cents; formatting is left to the model.
func NewRevenueMetricsTool(provider billing.Provider) *Tool {
	return &Tool{
		Name:        "get_revenue_metrics",
		Description: "Get revenue and subscription metrics for a date range. Amounts are integer cents.",
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"from": {
					Type:        "string",
					Description: "Start date, inclusive, as YYYY-MM-DD. Defaults to 30 days ago.",
				},
				"to": {
					Type:        "string",
					Description: "End date, inclusive, as YYYY-MM-DD. Defaults to today.",
				},
			},
		},
		Execute: func(ctx context.Context, userID uint, args map[string]any) (any, error) {
			now := time.Now().UTC()
			from := now.AddDate(0, 0, -30)
			to := now

			var err error
			if from, err = parseMetricsDate(args, "from", from); err != nil {
				return nil, err
			}
			if to, err = parseMetricsDate(args, "to", to); err != nil {
				return nil, err
			}
			if to.Before(from) {
				return nil, NewToolArgumentError("get_revenue_metrics", "'to' date is before 'from' date")
			}

			metrics, err := provider.GetMetrics(ctx, userID, from, to)
			if err != nil {
				return nil, err
			}

			return map[string]any{
				"from":            metrics.From.Format(metricsDateLayout),
				"to":              metrics.To.Format(metricsDateLayout),
				"revenue_cents":   int64(metrics.Revenue),
				"refunds_cents":   int64(metrics.Refunds),
				"new_customers":   metrics.NewCustomers,
				"active_subs":     metrics.ActiveSubs,
				"churned_subs":    metrics.ChurnedSubs,
				"trialing_subs":   metrics.TrialingSubs,
				"failed_charges":  metrics.FailedCharges,
				"currency_format": "minor units (cents)",
			}, nil
		},
	}
}

func parseMetricsDate(args map[string]any, key string, fallback time.Time) (time.Time, error) {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return fallback, nil
	}
	parsed, err := time.Parse(metricsDateLayout, raw)
	if err != nil {
		return time.Time{}, NewToolArgumentError("get_revenue_metrics",
			fmt.Sprintf("%q must be a YYYY-MM-DD date", key))
	}
	return parsed, nil
}

// NewCreateNoteTool lets the model save a note on the user's behalf.
func NewCreateNoteTool(notes note.NoteRepository) *Tool {
	return &Tool{
		Name:        "create_note",
		Description: "Save a note for the current user.",
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"title": {
					Type:        "string",
					Description: "Short note title.",
				},
				"content": {
					Type:        "string",
					Description: "Note body.",
				},
			},
			Required: []string{"title", "content"},
		},
		Execute: func(ctx context.Context, userID uint, args map[string]any) (any, error) {
			title, _ := args["title"].(string)
			content, _ := args["content"].(string)

			n := &domain.Note{
				UserID:  userID,
				Title:   title,
				Content: content,
			}
			if err := n.IsValid(); err != nil {
				return nil, NewToolArgumentError("create_note", err.Error())
			}
			created, err := notes.Create(ctx, n)
			if err != nil {
				return nil, NewPersistenceError("create note", err)
			}

			return map[string]any{
				"id":    created.ID,
				"title": created.Title,
			}, nil
		},
	}
}

// NewSearchNotesTool lets the model search the user's notes.
func NewSearchNotesTool(notes note.NoteRepository) *Tool {
	return &Tool{
		Name:        "search_notes",
		Description: "Search the current user's notes by title and content.",
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Search term.",
				},
			},
			Required: []string{"query"},
		},
		Execute: func(ctx context.Context, userID uint, args map[string]any) (any, error) {
			query, _ := args["query"].(string)

			found, err := notes.Search(ctx, userID, query, 20)
			if err != nil {
				if errors.Is(err, note.ErrInvalidSearchTerm) {
					return nil, NewToolArgumentError("search_notes", err.Error())
				}
				return nil, NewPersistenceError("search notes", err)
			}

			results := make([]map[string]any, 0, len(found))
			for _, n := range found {
				results = append(results, map[string]any{
					"id":      n.ID,
					"title":   n.Title,
					"content": n.Content,
				})
			}
			return map[string]any{
				"count":   len(results),
				"results": results,
			}, nil
		},
	}
}
