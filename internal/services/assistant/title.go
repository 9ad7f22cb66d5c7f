// File: internal/services/assistant/title.go
package assistant

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/launchkit/launchkit/internal/domain"
)

// TitleOutcome reports what happened to the thread title for one request.
// Title generation is best effort: a failed outcome never fails the chat.
type TitleOutcome struct {
	Title  string
	Failed bool
	Reason string
}

const titlePrompt = `Summarize the following conversation in a short title of at most six words.
Reply with the title only, no quotes, no trailing punctuation.

Conversation:
%s`

// maybeGenerateTitle replaces the placeholder title once a thread has
// accumulated enough messages. Any failure is logged and reported on the
// outcome; it is never returned as an error.
func (s *service) maybeGenerateTitle(ctx context.Context, thread *domain.Thread, messages []IncomingMessage) TitleOutcome {
	if !thread.NeedsTitle(len(messages)) {
		return TitleOutcome{Title: thread.Title}
	}

	titleCtx, cancel := context.WithTimeout(ctx, s.config.TitleTimeout)
	defer cancel()

	raw, err := s.provider.GetCompletion(titleCtx, s.config.TitleModel, fmt.Sprintf(titlePrompt, renderTranscript(messages)))
	if err != nil {
		s.logger.Warn("Title generation failed, keeping placeholder",
			"thread_id", thread.ID, "error", err)
		return TitleOutcome{Title: thread.Title, Failed: true, Reason: "model call failed"}
	}

	title := sanitizeTitle(raw, s.config.TitleMaxLength)
	if title == "" {
		s.logger.Warn("Title generation produced empty title, keeping placeholder",
			"thread_id", thread.ID)
		return TitleOutcome{Title: thread.Title, Failed: true, Reason: "empty title"}
	}

	if err := s.threads.UpdateTitle(ctx, thread.ID, title); err != nil {
		s.logger.Warn("Title update failed, keeping placeholder",
			"thread_id", thread.ID, "error", err)
		return TitleOutcome{Title: thread.Title, Failed: true, Reason: "title save failed"}
	}

	thread.Title = title
	return TitleOutcome{Title: title}
}

// renderTranscript flattens the text parts of a conversation for the title
// prompt, capped so long threads stay cheap to summarize.
func renderTranscript(messages []IncomingMessage) string {
	const maxChars = 4000

	var b strings.Builder
	for _, m := range messages {
		text := strings.TrimSpace(m.TextContent())
		if text == "" {
			continue
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(text)
		b.WriteString("\n")
		if b.Len() > maxChars {
			break
		}
	}
	transcript := b.String()
	if len(transcript) > maxChars {
		transcript = transcript[:maxChars]
	}
	return transcript
}

func sanitizeTitle(raw string, maxLength int) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.Join(strings.Fields(title), " ")

	if utf8.RuneCountInString(title) > maxLength {
		runes := []rune(title)
		title = strings.TrimSpace(string(runes[:maxLength]))
	}
	return title
}
