// Package host provides the get_host_info tool.
package host

import (
	"context"

	"github.com/Cyclone1070/reagent/internal/hostinfo"
	"github.com/Cyclone1070/reagent/internal/tool"
)

// Collector is what the tool needs from the hostinfo package.
type Collector interface {
	Collect(ctx context.Context) (hostinfo.Info, error)
}

type infoRequest struct{}

// New builds the get_host_info tool over the given collector.
func New(collector Collector) tool.Tool {
	return tool.NewFunc(tool.Descriptor{
		Name:        "get_host_info",
		Description: "Collect basic host metadata and return it as a JSON string.",
	}, func(ctx context.Context, _ infoRequest) (string, error) {
		info, err := collector.Collect(ctx)
		if err != nil {
			return "", err
		}
		return info.JSON()
	})
}
