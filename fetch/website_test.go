package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/didact/core"
)

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><title>Home</title></head>
<body><p>Welcome to the home page.</p>
<a href="/about">About</a>
<a href="/deep">Deep</a>
<a href="https://elsewhere.invalid/offsite">Offsite</a>
<script>ignored();</script></body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>About page content.</p><a href="/deep2"></a></body></html>`)
	})
	mux.HandleFunc("/deep", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Deep page content.</p></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestWebsiteFetcherSinglePage(t *testing.T) {
	srv := newTestSite(t)
	f := NewWebsiteFetcher()

	result, err := f.Fetch(context.Background(), core.Source{
		Kind:    core.SourceKindWebsite,
		Locator: srv.URL + "/",
		Depth:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, "Home", result.Title)
	assert.Contains(t, result.Text, "Welcome to the home page.")
	assert.NotContains(t, result.Text, "About page content.")
	assert.NotContains(t, result.Text, "ignored")
}

func TestWebsiteFetcherFollowsSameHostLinks(t *testing.T) {
	srv := newTestSite(t)
	f := NewWebsiteFetcher()

	result, err := f.Fetch(context.Background(), core.Source{
		Kind:    core.SourceKindWebsite,
		Locator: srv.URL + "/",
		Depth:   1,
	})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Welcome to the home page.")
	assert.Contains(t, result.Text, "About page content.")
	assert.Contains(t, result.Text, "Deep page content.")
}

func TestWebsiteFetcherSkipsFailingSubpages(t *testing.T) {
	srv := newTestSite(t)
	f := NewWebsiteFetcher()

	// Depth 2 reaches /deep2, which 404s. The crawl still succeeds with
	// the pages that worked.
	result, err := f.Fetch(context.Background(), core.Source{
		Kind:    core.SourceKindWebsite,
		Locator: srv.URL + "/",
		Depth:   2,
	})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "About page content.")
}

func TestWebsiteFetcherRootFailure(t *testing.T) {
	srv := newTestSite(t)
	f := NewWebsiteFetcher()

	_, err := f.Fetch(context.Background(), core.Source{
		Kind:    core.SourceKindWebsite,
		Locator: srv.URL + "/missing",
	})
	assert.Error(t, err)
}

func TestWebsiteFetcherBadScheme(t *testing.T) {
	f := NewWebsiteFetcher()

	_, err := f.Fetch(context.Background(), core.Source{
		Kind:    core.SourceKindWebsite,
		Locator: "ftp://example.com/",
	})
	assert.Error(t, err)
}
