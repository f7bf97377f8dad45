package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Registry holds the fixed tool set of a run. It is built once at
// startup and read-only afterwards.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a registry from the given tools. A duplicate name
// is a wiring bug and fails construction.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds one tool.
func (r *Registry) Register(t Tool) error {
	name := t.Describe().Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q registered twice", name)
	}
	r.tools[name] = t
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Descriptors returns every registered descriptor, sorted by name for
// stable prompt rendering.
func (r *Registry) Descriptors() []Descriptor {
	descs := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		descs = append(descs, t.Describe())
	}
	sort.Slice(descs, func(i, j int) bool {
		return descs[i].Name < descs[j].Name
	})
	return descs
}

// Dispatch runs one parsed action and always comes back with an
// observation string: unknown tools, arity mismatches, handler errors
// and handler panics all degrade to error text the model can read and
// recover from. Dispatch never aborts the run.
func (r *Registry) Dispatch(ctx context.Context, name string, args []any) (observation string) {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools: %s", name, strings.Join(r.names(), ", "))
	}

	named, err := bindArgs(t.Describe(), args)
	if err != nil {
		return fmt.Sprintf("Tool execution error: %v", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			observation = fmt.Sprintf("Tool execution error: %v", rec)
		}
	}()

	out, err := t.Call(ctx, named)
	if err != nil {
		return fmt.Sprintf("Tool execution error: %v", err)
	}
	return out
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindArgs zips positional values with the descriptor's ordered params,
// filling declared defaults for omitted trailing params.
func bindArgs(desc Descriptor, args []any) (map[string]any, error) {
	if len(args) > len(desc.Params) {
		return nil, fmt.Errorf("%s() takes at most %d arguments (%d given)", desc.Name, len(desc.Params), len(args))
	}
	named := make(map[string]any, len(desc.Params))
	for i, p := range desc.Params {
		switch {
		case i < len(args):
			named[p.Name] = args[i]
		case p.HasDefault:
			named[p.Name] = p.Default
		default:
			return nil, fmt.Errorf("%s() missing required argument %q", desc.Name, p.Name)
		}
	}
	return named, nil
}
