package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Cyclone1070/reagent/internal/tool"
)

const (
	// DefaultFetchTimeout bounds one fetch, in seconds, matching the
	// tool's timeout parameter unit.
	DefaultFetchTimeout = 20
	// maxPreview caps the text preview in bytes.
	maxPreview = 4000
)

type fetchRequest struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type fetchResult struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	TextPreview string `json:"text_preview"`
	URL         string `json:"url"`
}

// NewFetch builds the fetch_url tool. The observation is a JSON
// document with the status, content type, a truncated body preview and
// the final URL after redirects. Failures come back as a
// "Fetch error: ..." observation. defaultTimeout is in seconds, the
// unit of the tool's timeout parameter; non-positive values fall back
// to DefaultFetchTimeout.
func NewFetch(client Doer, defaultTimeout int) tool.Tool {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultFetchTimeout
	}
	return tool.NewFunc(tool.Descriptor{
		Name:        "fetch_url",
		Description: "Fetch a URL and return metadata plus a truncated text preview.",
		Params: []tool.ParamSpec{
			tool.Required("url"),
			tool.Optional("timeout", defaultTimeout),
		},
	}, func(ctx context.Context, req fetchRequest) (string, error) {
		timeout := req.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		result, err := fetch(ctx, client, req.URL, time.Duration(timeout)*time.Second)
		if err != nil {
			return fmt.Sprintf("Fetch error: %v", err), nil
		}
		return encodeJSON(result)
	})
}

func fetch(ctx context.Context, client Doer, target string, timeout time.Duration) (fetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fetchResult{}, err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fetchResult{}, err
	}
	defer resp.Body.Close()

	// The preview never needs more than the cap, so reading stops there.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPreview+1))
	if err != nil {
		return fetchResult{}, fmt.Errorf("read body: %w", err)
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return fetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		TextPreview: truncate(string(body), maxPreview),
		URL:         finalURL,
	}, nil
}
