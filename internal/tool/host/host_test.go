package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/reagent/internal/hostinfo"
)

type collectorFunc func(ctx context.Context) (hostinfo.Info, error)

func (f collectorFunc) Collect(ctx context.Context) (hostinfo.Info, error) {
	return f(ctx)
}

func TestGetHostInfo_ReturnsJSON(t *testing.T) {
	t.Parallel()

	collector := collectorFunc(func(_ context.Context) (hostinfo.Info, error) {
		return hostinfo.Info{
			System:            "Linux",
			Release:           "6.8.0",
			Machine:           "x86_64",
			Processor:         "test cpu",
			MemoryGB:          8,
			AvailableMemoryGB: 4.5,
			CPUCount:          4,
		}, nil
	})

	got, err := New(collector).Call(context.Background(), map[string]any{})

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"system": "Linux",
		"release": "6.8.0",
		"machine": "x86_64",
		"processor": "test cpu",
		"memory_gb": 8,
		"available_memory_gb": 4.5,
		"cpu_count": 4
	}`, got)
}

func TestGetHostInfo_CollectError(t *testing.T) {
	t.Parallel()

	collector := collectorFunc(func(_ context.Context) (hostinfo.Info, error) {
		return hostinfo.Info{}, errors.New("probe failed")
	})

	_, err := New(collector).Call(context.Background(), map[string]any{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe failed")
}

func TestGetHostInfoSignature(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "get_host_info()", New(nil).Describe().Signature())
}
