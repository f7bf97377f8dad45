// Package web provides the network-facing tools: DuckDuckGo search and
// URL fetching. Both report failures inside the observation text
// instead of erroring, so the model can read them and adjust.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Doer is the HTTP client seam. Tests inject canned responses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// fetchUserAgent identifies the agent on plain fetches.
	fetchUserAgent = "ReAct-Agent/0.1 (+https://example.com)"
	// searchUserAgent mimics a text browser; the HTML search endpoint
	// serves bot UAs a challenge page.
	searchUserAgent = "Lynx/2.8.9rel.1 libwww-FM/2.14"
)

// encodeJSON marshals v for observation text: two space indent, no
// HTML escaping.
func encodeJSON(v any) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode observation: %w", err)
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// truncate caps s at max bytes, backing off to a rune boundary, and
// marks the cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n[truncated]"
}
