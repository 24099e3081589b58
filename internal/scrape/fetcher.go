// Package scrape fetches page metadata (title, description, favicon)
// for saved URLs. Fetching is best effort: any failure degrades to a
// minimal result with a warning instead of an error, so saving a
// bookmark never depends on the target site behaving.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html"

	"github.com/linkshelfapp/linkshelf-server/internal/domain"
)

const (
	userAgent = "LinkShelf/1.0 (+https://linkshelf.app)"

	maxRedirects = 3

	titleMaxLen       = 500
	descriptionMaxLen = 1000
)

// Result is the outcome of a metadata fetch. Warning is set when the
// fetch degraded; the other fields then hold best-effort fallbacks.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FaviconURL  string `json:"favicon_url"`
	Warning     string `json:"warning,omitempty"`
}

// Degraded reports whether the fetch fell back to placeholder metadata.
func (r *Result) Degraded() bool {
	return r.Warning != ""
}

// Fetcher retrieves and parses page metadata over HTTP.
type Fetcher struct {
	http    *http.Client
	timeout time.Duration
	maxBody int64
	logger  *slog.Logger
}

// NewFetcher creates a fetcher with the given per-request timeout and
// response body cap.
func NewFetcher(timeout time.Duration, maxBody int64, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		timeout: timeout,
		maxBody: maxBody,
		logger:  logger,
	}
}

// Fetch retrieves metadata for rawURL. It never returns an error: on
// any failure the result carries fallback values and a warning. The
// fetch runs under its own timeout, detached from any deadline on ctx.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *Result {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return f.degraded(rawURL, fmt.Sprintf("invalid URL: %v", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return f.degraded(rawURL, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return f.degraded(rawURL, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return f.degraded(rawURL, fmt.Sprintf("parse page: %v", err))
	}

	// resp.Request reflects the final URL after redirects, so relative
	// favicon paths resolve against the page that actually served.
	finalURL := resp.Request.URL
	meta := extractMetadata(doc)

	result := &Result{
		URL:         rawURL,
		Title:       truncate(meta.title, titleMaxLen),
		Description: truncate(meta.description, descriptionMaxLen),
		FaviconURL:  resolveFavicon(meta.favicon, finalURL),
	}
	if result.Title == "" {
		result.Title = truncate(rawURL, titleMaxLen)
	}

	f.logger.Debug("scraped metadata",
		"url", rawURL,
		"title", result.Title,
		"has_favicon", result.FaviconURL != "",
	)
	return result
}

// degraded builds the fallback result: hostname as title, nothing else.
func (f *Fetcher) degraded(rawURL, warning string) *Result {
	f.logger.Debug("scrape degraded", "url", rawURL, "warning", warning)
	return &Result{
		URL:     rawURL,
		Title:   domain.Hostname(rawURL),
		Warning: warning,
	}
}

// resolveFavicon turns a favicon href from the page into an absolute
// URL, falling back to Google's favicon service for the host.
func resolveFavicon(href string, finalURL *url.URL) string {
	if href != "" {
		ref, err := url.Parse(href)
		if err == nil {
			return finalURL.ResolveReference(ref).String()
		}
	}
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(finalURL.Hostname()) + "&sz=64"
}

// truncate cuts s to at most max bytes on a rune boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
