// File: internal/services/mail/render_test.go
package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	html, err := renderHTML("Hi **there**\n\n- first\n- second")
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>there</strong>")
	assert.Contains(t, html, "<li>first</li>")
}
