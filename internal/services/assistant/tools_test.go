// File: internal/services/assistant/tools_test.go
package assistant

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "echoes its input",
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"value": {Type: "string"},
			},
			Required: []string{"value"},
		},
		Execute: func(ctx context.Context, userID uint, args map[string]any) (any, error) {
			return args["value"], nil
		},
	}
}

func TestNewRegistryRejectsBadDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("duplicate names", func(t *testing.T) {
		t.Parallel()
		_, err := NewRegistry(echoTool("echo"), echoTool("echo"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate tool name")
	})

	t.Run("missing execute", func(t *testing.T) {
		t.Parallel()
		tool := echoTool("echo")
		tool.Execute = nil
		_, err := NewRegistry(tool)
		require.Error(t, err)
	})

	t.Run("missing schema", func(t *testing.T) {
		t.Parallel()
		tool := echoTool("echo")
		tool.Schema = nil
		_, err := NewRegistry(tool)
		require.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := NewRegistry(echoTool(""))
		require.Error(t, err)
	})
}

func TestRegistryLookupUnknownTool(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("echo"))
	require.NoError(t, err)

	_, err = registry.Lookup("no_such_tool")
	require.Error(t, err)
	assert.True(t, IsToolArgumentError(err))
}

func TestValidateArgs(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("echo"))
	require.NoError(t, err)
	tool, err := registry.Lookup("echo")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		args, err := tool.ValidateArgs(json.RawMessage(`{"value":"hi"}`))
		require.NoError(t, err)
		assert.Equal(t, "hi", args["value"])
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		_, err := tool.ValidateArgs(json.RawMessage(`{}`))
		require.Error(t, err)
		assert.True(t, IsToolArgumentError(err))
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()
		_, err := tool.ValidateArgs(json.RawMessage(`{"value":7}`))
		require.Error(t, err)
		assert.True(t, IsToolArgumentError(err))
	})

	t.Run("not an object", func(t *testing.T) {
		t.Parallel()
		_, err := tool.ValidateArgs(json.RawMessage(`[1,2]`))
		require.Error(t, err)
		assert.True(t, IsToolArgumentError(err))
	})
}

func TestDefinitionsStableOrder(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("zeta"), echoTool("alpha"), echoTool("mid"))
	require.NoError(t, err)

	defs := registry.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "mid", defs[1].Name)
	assert.Equal(t, "zeta", defs[2].Name)
}
