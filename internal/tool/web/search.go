package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Cyclone1070/reagent/internal/tool"
)

const searchEndpoint = "https://html.duckduckgo.com/html/"

// DefaultMaxResults is how many search hits are returned when the
// model does not ask for a count.
const DefaultMaxResults = 5

var (
	// Result links: <a rel="nofollow" class="result__a" href="...">Title</a>
	linkRe = regexp.MustCompile(`<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>([^<]+)</a>`)
	// Snippets: <a class="result__snippet" href="...">Snippet text</a>
	snippetRe = regexp.MustCompile(`<a[^>]+class="result__snippet"[^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</a>`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
)

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type searchRequest struct {
	Query      string `mapstructure:"query"`
	MaxResults int    `mapstructure:"max_results"`
	Site       string `mapstructure:"site"`
}

// NewSearch builds the web_search tool on the keyless DuckDuckGo HTML
// endpoint. Failures come back as a "Search error: ..." observation.
func NewSearch(client Doer) tool.Tool {
	return tool.NewFunc(tool.Descriptor{
		Name:        "web_search",
		Description: "Search the web via DuckDuckGo and return JSON formatted results.",
		Params: []tool.ParamSpec{
			tool.Required("query"),
			tool.Optional("max_results", DefaultMaxResults),
			tool.Optional("site", nil),
		},
	}, func(ctx context.Context, req searchRequest) (string, error) {
		maxResults := req.MaxResults
		if maxResults <= 0 {
			maxResults = DefaultMaxResults
		}
		q := req.Query
		if req.Site != "" {
			q = fmt.Sprintf("site:%s %s", req.Site, req.Query)
		}

		results, err := search(ctx, client, q, maxResults)
		if err != nil {
			return fmt.Sprintf("Search error: %v", err), nil
		}
		return encodeJSON(results)
	})
}

func search(ctx context.Context, client Doer, query string, count int) ([]searchResult, error) {
	params := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", searchUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo search error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read duckduckgo response: %w", err)
	}

	return parseResults(string(body), count), nil
}

// parseResults extracts result links and snippets from the HTML page.
// Links and snippets appear in document order, so they are paired by
// index.
func parseResults(page string, count int) []searchResult {
	results := make([]searchResult, 0, count)

	links := linkRe.FindAllStringSubmatch(page, count*2)
	snippets := snippetRe.FindAllStringSubmatch(page, count*2)

	for i := 0; i < len(links) && len(results) < count; i++ {
		href := resolveRedirect(links[i][1])
		if !strings.HasPrefix(href, "http") {
			continue
		}

		snippet := ""
		if i < len(snippets) {
			snippet = stripTags(snippets[i][1])
		}

		results = append(results, searchResult{
			Title:   html.UnescapeString(strings.TrimSpace(links[i][2])),
			URL:     href,
			Snippet: html.UnescapeString(snippet),
		})
	}
	return results
}

// resolveRedirect unwraps DuckDuckGo's redirect links, which carry the
// target in a uddg query parameter.
func resolveRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	parts := strings.SplitN(href, "uddg=", 2)
	decoded, err := url.QueryUnescape(parts[1])
	if err != nil {
		return href
	}
	if idx := strings.Index(decoded, "&"); idx != -1 {
		decoded = decoded[:idx]
	}
	return decoded
}

func stripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
