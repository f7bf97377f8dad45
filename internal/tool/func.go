package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator gives request types an optional validation hook, checked
// after decoding and before the tool function runs.
type Validator interface {
	Validate() error
}

// Func adapts a plain function with a typed request struct into a Tool.
// The named-args map is decoded onto the request with weak typing, so
// the int64/float64 values the action parser produces fit plain int and
// float fields.
type Func[Req any] struct {
	desc Descriptor
	run  func(ctx context.Context, req Req) (string, error)
}

// NewFunc builds a Func tool from a descriptor and its implementation.
func NewFunc[Req any](desc Descriptor, run func(ctx context.Context, req Req) (string, error)) *Func[Req] {
	return &Func[Req]{desc: desc, run: run}
}

// Describe implements Tool.
func (f *Func[Req]) Describe() Descriptor {
	return f.desc
}

// Call implements Tool: decode, validate, run.
func (f *Func[Req]) Call(ctx context.Context, args map[string]any) (string, error) {
	var req Req
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return "", fmt.Errorf("build decoder for %s: %w", f.desc.Name, err)
	}
	if err := dec.Decode(args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", err
		}
	}
	return f.run(ctx, req)
}
