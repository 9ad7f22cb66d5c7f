// File: internal/services/assistant/title_test.go
package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/launchkit/internal/domain"
)

func transcript(n int) []IncomingMessage {
	msgs := make([]IncomingMessage, n)
	for i := range msgs {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		msgs[i] = IncomingMessage{
			ID:    "m",
			Role:  role,
			Parts: []domain.MessagePart{{Type: domain.PartTypeText, Text: "some message"}},
		}
	}
	return msgs
}

func TestMaybeGenerateTitleReplacesPlaceholder(t *testing.T) {
	t.Parallel()

	threads := newFakeThreadRepo()
	th, err := threads.Create(context.Background(), &domain.Thread{
		ID: "t-1", UserID: 1, Title: domain.PlaceholderTitle,
	})
	require.NoError(t, err)

	provider := &stubProvider{
		completionFn: func(ctx context.Context, model, prompt string) (string, error) {
			return `"Quarterly revenue questions"` + "\n", nil
		},
	}
	svc := newTestService(provider, emptyRegistry(), threads, newFakeMessageRepo())

	outcome := svc.maybeGenerateTitle(context.Background(), th, transcript(4))
	assert.False(t, outcome.Failed)
	assert.Equal(t, "Quarterly revenue questions", outcome.Title)

	stored, err := threads.FindByID(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly revenue questions", stored.Title)
}

func TestMaybeGenerateTitleSkipsShortThreads(t *testing.T) {
	t.Parallel()

	threads := newFakeThreadRepo()
	th, err := threads.Create(context.Background(), &domain.Thread{
		ID: "t-1", UserID: 1, Title: domain.PlaceholderTitle,
	})
	require.NoError(t, err)

	provider := &stubProvider{
		completionFn: func(ctx context.Context, model, prompt string) (string, error) {
			t.Fatal("completion must not be called below the threshold")
			return "", nil
		},
	}
	svc := newTestService(provider, emptyRegistry(), threads, newFakeMessageRepo())

	outcome := svc.maybeGenerateTitle(context.Background(), th, transcript(3))
	assert.False(t, outcome.Failed)
	assert.Equal(t, domain.PlaceholderTitle, outcome.Title)
}

func TestMaybeGenerateTitleSkipsTitledThreads(t *testing.T) {
	t.Parallel()

	threads := newFakeThreadRepo()
	th, err := threads.Create(context.Background(), &domain.Thread{
		ID: "t-1", UserID: 1, Title: "Already titled",
	})
	require.NoError(t, err)

	svc := newTestService(&stubProvider{}, emptyRegistry(), threads, newFakeMessageRepo())

	outcome := svc.maybeGenerateTitle(context.Background(), th, transcript(10))
	assert.Equal(t, "Already titled", outcome.Title)
}

func TestMaybeGenerateTitleFailureIsIsolated(t *testing.T) {
	t.Parallel()

	threads := newFakeThreadRepo()
	th, err := threads.Create(context.Background(), &domain.Thread{
		ID: "t-1", UserID: 1, Title: domain.PlaceholderTitle,
	})
	require.NoError(t, err)

	provider := &stubProvider{
		completionFn: func(ctx context.Context, model, prompt string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	svc := newTestService(provider, emptyRegistry(), threads, newFakeMessageRepo())

	outcome := svc.maybeGenerateTitle(context.Background(), th, transcript(4))
	assert.True(t, outcome.Failed)
	assert.Equal(t, domain.PlaceholderTitle, outcome.Title)

	stored, err := threads.FindByID(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceholderTitle, stored.Title)
}

func TestMaybeGenerateTitleTruncatesLongTitles(t *testing.T) {
	t.Parallel()

	threads := newFakeThreadRepo()
	th, err := threads.Create(context.Background(), &domain.Thread{
		ID: "t-1", UserID: 1, Title: domain.PlaceholderTitle,
	})
	require.NoError(t, err)

	provider := &stubProvider{
		completionFn: func(ctx context.Context, model, prompt string) (string, error) {
			return strings.Repeat("long title ", 30), nil
		},
	}
	svc := newTestService(provider, emptyRegistry(), threads, newFakeMessageRepo())

	outcome := svc.maybeGenerateTitle(context.Background(), th, transcript(4))
	assert.False(t, outcome.Failed)
	assert.LessOrEqual(t, len([]rune(outcome.Title)), domain.TitleMaxLength)
	assert.NotEmpty(t, outcome.Title)
}

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quotes stripped", `"Budget review"`, "Budget review"},
		{"newlines collapsed", "Budget\nreview", "Budget review"},
		{"whitespace squeezed", "  Budget   review  ", "Budget review"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizeTitle(tt.in, 100))
		})
	}
}
