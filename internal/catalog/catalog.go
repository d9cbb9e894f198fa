// Package catalog describes the tools exposed by the external YouTrack MCP
// server that ytmenu knows how to invoke.
//
// The catalog is static: ytmenu does not speak the MCP protocol itself, so it
// cannot discover tools at runtime. Each entry carries enough metadata to
// drive the interactive parameter prompts, render a listing, and validate
// assembled arguments before the external client is spawned. Definitions are
// expressed as mcp-go Tool values so the listing matches what the server
// itself would advertise.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ParamKind tells the prompt layer how to read and encode a parameter value.
type ParamKind int

const (
	KindString ParamKind = iota
	KindInt
	KindList // comma-separated input, encoded as a JSON array of strings
	KindJSON // raw JSON object or array, passed through verbatim
)

// Param describes a single keyword parameter of a tool.
type Param struct {
	Name        string
	Prompt      string // short label shown next to the input field
	Description string
	Kind        ParamKind
	Required    bool
	Default     string // pre-filled prompt value, empty for none
}

// Tool is one invocable entry of the catalog.
type Tool struct {
	Name        string
	Category    string
	Description string
	Example     string
	Params      []Param
}

// Definition renders the tool as an mcp-go tool definition.
func (t Tool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}

	for _, p := range t.Params {
		var propOpts []mcp.PropertyOption
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}

		switch p.Kind {
		case KindInt:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case KindList:
			propOpts = append(propOpts, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		case KindJSON:
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}

	return mcp.NewTool(t.Name, opts...)
}

// Param returns the named parameter spec.
func (t Tool) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks assembled keyword arguments against the tool definition:
// all required parameters must be present and every supplied parameter must
// be known. Values are assumed to be already typed (see ParseValue).
func (t Tool) Validate(kwargs map[string]any) error {
	def := t.Definition()

	for _, name := range def.InputSchema.Required {
		v, ok := kwargs[name]
		if !ok {
			return fmt.Errorf("missing required parameter %q", name)
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return fmt.Errorf("required parameter %q is empty", name)
		}
	}

	for name := range kwargs {
		if _, ok := def.InputSchema.Properties[name]; !ok {
			return fmt.Errorf("unknown parameter %q for tool %q", name, t.Name)
		}
	}

	return nil
}

// ParseValue converts raw prompt input into the typed value the server
// expects for this parameter kind. Empty input yields (nil, false) so
// optional parameters can simply be omitted from the payload.
func (p Param) ParseValue(raw string) (any, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false, nil
	}

	switch p.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, fmt.Errorf("parameter %q must be a whole number: %w", p.Name, err)
		}
		return n, true, nil

	case KindList:
		parts := strings.Split(raw, ",")
		items := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if len(items) == 0 {
			return nil, false, nil
		}
		return items, true, nil

	case KindJSON:
		if !json.Valid([]byte(raw)) {
			return nil, false, fmt.Errorf("parameter %q must be valid JSON", p.Name)
		}
		return json.RawMessage(raw), true, nil

	default:
		return raw, true, nil
	}
}

// Find returns the catalog entry with the given name.
func Find(name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// All returns every catalog entry, grouped by category and alphabetical
// within a category. The returned slice is a copy.
func All() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Categories returns the distinct category names in display order.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range All() {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
