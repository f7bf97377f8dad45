package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func htmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const searchPage = `
<div class="result">
  <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">Go Documentation</a>
  <a class="result__snippet" href="#">Learn <b>Go</b> today</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://go.dev/blog/">The Go Blog &amp; News</a>
  <a class="result__snippet" href="#">Official blog</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://pkg.go.dev/">Package Index</a>
  <a class="result__snippet" href="#">Browse packages</a>
</div>
`

func TestWebSearch_ParsesResults(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.Query().Get("q")
		return htmlResponse(http.StatusOK, searchPage), nil
	})

	got, err := NewSearch(client).Call(context.Background(), map[string]any{
		"query":       "golang docs",
		"max_results": 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "golang docs", gotQuery)
	assert.Contains(t, got, `"title": "Go Documentation"`)
	assert.Contains(t, got, `"url": "https://go.dev/doc/"`)
	assert.Contains(t, got, `"snippet": "Learn Go today"`)
	assert.Contains(t, got, `"title": "The Go Blog & News"`)
	assert.NotContains(t, got, "Package Index", "max_results must cap the list")
}

func TestWebSearch_SiteFilterPrependsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.Query().Get("q")
		return htmlResponse(http.StatusOK, ""), nil
	})

	_, err := NewSearch(client).Call(context.Background(), map[string]any{
		"query": "generics",
		"site":  "go.dev",
	})

	require.NoError(t, err)
	assert.Equal(t, "site:go.dev generics", gotQuery)
}

func TestWebSearch_NoResultsIsEmptyList(t *testing.T) {
	t.Parallel()

	client := doerFunc(func(_ *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, "<html>no results</html>"), nil
	})

	got, err := NewSearch(client).Call(context.Background(), map[string]any{"query": "x"})

	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestWebSearch_TransportErrorBecomesObservation(t *testing.T) {
	t.Parallel()

	client := doerFunc(func(_ *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	got, err := NewSearch(client).Call(context.Background(), map[string]any{"query": "x"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Search error: "))
	assert.Contains(t, got, "connection refused")
}

func TestWebSearch_BadStatusBecomesObservation(t *testing.T) {
	t.Parallel()

	client := doerFunc(func(_ *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusServiceUnavailable, ""), nil
	})

	got, err := NewSearch(client).Call(context.Background(), map[string]any{"query": "x"})

	require.NoError(t, err)
	assert.Equal(t, "Search error: duckduckgo search error: status 503", got)
}

func TestWebSearch_SkipsNonHTTPLinks(t *testing.T) {
	t.Parallel()

	page := `<a class="result__a" href="javascript:void(0)">Bad</a>` +
		`<a class="result__a" href="https://go.dev/">Good</a>`
	client := doerFunc(func(_ *http.Request) (*http.Response, error) {
		return htmlResponse(http.StatusOK, page), nil
	})

	got, err := NewSearch(client).Call(context.Background(), map[string]any{"query": "x"})

	require.NoError(t, err)
	assert.NotContains(t, got, "Bad")
	assert.Contains(t, got, `"title": "Good"`)
}

func TestResolveRedirect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://go.dev/doc/",
		resolveRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc"))
	assert.Equal(t, "https://go.dev/", resolveRedirect("https://go.dev/"))
}

func TestSearchSignature(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "web_search(query, max_results=5, site=none)",
		NewSearch(nil).Describe().Signature())
}
