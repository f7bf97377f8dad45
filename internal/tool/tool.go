// Package tool defines the registry the agent loop dispatches parsed
// actions through, and the descriptor data prompt assembly renders.
package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ParamSpec is one positional parameter of a tool. Params are ordered;
// positional values bind to them left to right. A param with HasDefault
// set may be omitted by the caller.
type ParamSpec struct {
	Name       string
	Default    any
	HasDefault bool
}

// Optional builds a ParamSpec with a default value. A nil default is
// meaningful (rendered as none in the signature).
func Optional(name string, def any) ParamSpec {
	return ParamSpec{Name: name, Default: def, HasDefault: true}
}

// Required builds a ParamSpec the caller must supply.
func Required(name string) ParamSpec {
	return ParamSpec{Name: name}
}

// Descriptor is the static description of one tool: its wire name, its
// ordered parameters and the one-line description shown to the model.
type Descriptor struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// Signature renders the call shape shown to the model, e.g.
// web_search(query, max_results=5, site=none).
func (d Descriptor) Signature() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		if p.HasDefault {
			parts[i] = p.Name + "=" + formatDefault(p.Default)
		} else {
			parts[i] = p.Name
		}
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(parts, ", "))
}

func formatDefault(v any) string {
	switch t := v.(type) {
	case nil:
		return "none"
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Tool is one dispatchable capability. Call receives arguments already
// bound to parameter names and returns the observation text fed back to
// the model.
type Tool interface {
	Describe() Descriptor
	Call(ctx context.Context, args map[string]any) (string, error)
}
