// File: internal/services/assistant/tools.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/launchkit/launchkit/internal/services/ai"
)

// Tool is a model-invokable capability. Execute receives the validated,
// decoded arguments and the id of the requesting user; every tool is scoped
// to that user.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
	Execute     func(ctx context.Context, userID uint, args map[string]any) (any, error)

	resolved *jsonschema.Resolved
}

// Registry holds the tools exposed to the model for a chat request. It is
// built once at startup; construction fails loudly on bad definitions so a
// broken tool can never ship.
type Registry struct {
	tools map[string]*Tool
}

func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" {
			return nil, fmt.Errorf("tool registry: tool with empty name")
		}
		if t.Execute == nil {
			return nil, fmt.Errorf("tool registry: tool %q has no execute function", t.Name)
		}
		if t.Schema == nil {
			return nil, fmt.Errorf("tool registry: tool %q has no schema", t.Name)
		}
		if _, dup := r.tools[t.Name]; dup {
			return nil, fmt.Errorf("tool registry: duplicate tool name %q", t.Name)
		}

		resolved, err := t.Schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("tool registry: tool %q schema: %w", t.Name, err)
		}
		t.resolved = resolved
		r.tools[t.Name] = t
	}
	return r, nil
}

// Lookup returns the named tool. An unknown name is a ToolArgumentError so
// the model gets told and can correct itself.
func (r *Registry) Lookup(name string) (*Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, NewToolArgumentError(name, "unknown tool: "+name)
	}
	return t, nil
}

// ValidateArgs decodes raw argument JSON and checks it against the tool's
// schema.
func (t *Tool) ValidateArgs(raw json.RawMessage) (map[string]any, error) {
	var args map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, NewToolArgumentError(t.Name, "arguments are not a JSON object")
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	if err := t.resolved.Validate(args); err != nil {
		return nil, NewToolArgumentError(t.Name, err.Error())
	}
	return args, nil
}

// Definitions returns the tool declarations in stable order for the model
// request.
func (r *Registry) Definitions() []ai.ToolDefinition {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]ai.ToolDefinition, 0, len(names))
	for _, name := range names {
		t := r.tools[name]
		defs = append(defs, ai.ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Schema,
		})
	}
	return defs
}

func (r *Registry) Len() int {
	return len(r.tools)
}
