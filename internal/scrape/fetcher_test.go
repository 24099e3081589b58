package scrape

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher() *Fetcher {
	return NewFetcher(2*time.Second, 5*1024*1024, testLogger())
}

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_OpenGraphPreferred(t *testing.T) {
	srv := servePage(t, `<!DOCTYPE html><html><head>
		<meta property="og:title" content="OG Title">
		<meta name="twitter:title" content="Twitter Title">
		<title>Doc Title</title>
		<meta property="og:description" content="OG description">
		<meta name="description" content="Meta description">
		<link rel="icon" href="/favicon.png">
	</head><body></body></html>`)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	assert.Empty(t, result.Warning)
	assert.Equal(t, "OG Title", result.Title)
	assert.Equal(t, "OG description", result.Description)
	assert.Equal(t, srv.URL+"/favicon.png", result.FaviconURL)
}

func TestFetch_FallbackChains(t *testing.T) {
	srv := servePage(t, `<html><head>
		<title>  Plain Title  </title>
		<meta name="twitter:description" content="Twitter description">
		<link rel="shortcut icon" href="images/icon.ico">
	</head></html>`)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	assert.Equal(t, "Plain Title", result.Title)
	assert.Equal(t, "Twitter description", result.Description)
	assert.Equal(t, srv.URL+"/images/icon.ico", result.FaviconURL)
}

func TestFetch_NoMetadata(t *testing.T) {
	srv := servePage(t, `<html><head></head><body>nothing here</body></html>`)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	assert.Empty(t, result.Warning)
	// No title anywhere falls back to the URL itself.
	assert.Equal(t, srv.URL, result.Title)
	assert.Empty(t, result.Description)
	assert.Contains(t, result.FaviconURL, "google.com/s2/favicons")
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	require.True(t, result.Degraded())
	assert.Contains(t, result.Warning, "404")
	// Degraded title is the hostname.
	assert.Equal(t, "127.0.0.1", result.Title)
	assert.Empty(t, result.FaviconURL)
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	assert.True(t, result.Degraded())
	assert.Equal(t, srv.URL, result.URL)
}

func TestFetch_RedirectLimit(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
	}))
	t.Cleanup(srv.Close)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	require.True(t, result.Degraded())
	assert.Contains(t, result.Warning, "redirect")
}

func TestFetch_RelativeFaviconAfterRedirect(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pages/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/pages/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><head><title>Final</title><link rel="icon" href="icon.svg"></head></html>`)
	})

	result := newTestFetcher().Fetch(context.Background(), srv.URL+"/start")

	assert.Equal(t, "Final", result.Title)
	// Resolved against the redirect target, not the original URL.
	assert.Equal(t, srv.URL+"/pages/icon.svg", result.FaviconURL)
}

func TestFetch_TitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 600)
	srv := servePage(t, `<html><head><title>`+long+`</title></head></html>`)

	result := newTestFetcher().Fetch(context.Background(), srv.URL)

	assert.Len(t, result.Title, titleMaxLen)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	// Never splits a multi-byte rune.
	assert.Equal(t, "héllo"[:3], truncate("héllo", 3))
	assert.Equal(t, "", truncate("日本語", 2))
}

func TestCache(t *testing.T) {
	cache, err := NewCache("", time.Hour, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	_, ok := cache.Get("https://example.com")
	assert.False(t, ok)

	result := &Result{URL: "https://example.com", Title: "Example"}
	cache.Set("https://example.com", result)

	got, ok := cache.Get("https://example.com")
	require.True(t, ok)
	assert.Equal(t, "Example", got.Title)
}

func TestCache_SkipsDegraded(t *testing.T) {
	cache, err := NewCache("", time.Hour, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	cache.Set("https://flaky.example", &Result{URL: "https://flaky.example", Warning: "request failed"})

	_, ok := cache.Get("https://flaky.example")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	cache, err := NewCache("", 50*time.Millisecond, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	cache.Set("https://ttl.example", &Result{URL: "https://ttl.example", Title: "TTL"})
	time.Sleep(150 * time.Millisecond)

	_, ok := cache.Get("https://ttl.example")
	assert.False(t, ok)
}
