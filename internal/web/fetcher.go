// Package web fetches third-party article pages and hands them over as
// Markdown, riding out load shedding and anti-bot behavior with a
// bounded retry budget.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pinboxsync/pinbox-to-markdown/internal/htmlmd"
	"github.com/pinboxsync/pinbox-to-markdown/internal/x"
)

const (
	fetchAttempts = 3

	// Pages whose stripped text falls below this many runes are suspected
	// placeholders; real articles are longer.
	minContentRunes = 100
)

// HTTPClient is the transport surface the fetcher needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves pages and converts them to Markdown.
type Fetcher struct {
	client       HTTPClient
	rewriteRules []RewriteRule
	backoffUnit  time.Duration
}

// NewFetcher creates a fetcher using client as its transport.
func NewFetcher(client HTTPClient) *Fetcher {
	return &Fetcher{
		client:       client,
		rewriteRules: defaultRewriteRules,
		backoffUnit:  time.Second,
	}
}

// placeholderError means the page returned a loading shell instead of
// content. Retried with a longer backoff to give the origin time to
// render server-side.
type placeholderError struct{}

func (*placeholderError) Error() string { return "page returned placeholder content" }

// Fetch retrieves rawURL and returns its content as Markdown. A failure
// that survives the retry budget, or a page that is structurally
// unfetchable (removed content, empty body), comes back as an error;
// callers degrade to a placeholder note section rather than aborting.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	rawURL = f.rewrite(rawURL)

	var content string
	err := x.Do(ctx, x.Policy{
		Attempts: fetchAttempts,
		Delay:    f.backoff,
	}, func() error {
		var err error
		content, err = f.fetchOnce(ctx, rawURL)
		return err
	})
	if err != nil {
		slog.Warn("giving up on page", "url", rawURL, "error", err)
		return "", err
	}

	return content, nil
}

// backoff grows linearly with the attempt number; placeholder pages get
// a head start of two extra units since the origin likely needs time to
// finish rendering.
func (f *Fetcher) backoff(attempt uint, err error) time.Duration {
	var placeholder *placeholderError
	if errors.As(err, &placeholder) {
		return 2*f.backoffUnit + time.Duration(attempt)*f.backoffUnit
	}
	return time.Duration(attempt) * f.backoffUnit
}

func (f *Fetcher) rewrite(rawURL string) string {
	for _, rule := range f.rewriteRules {
		if strings.Contains(rawURL, rule.HostContains) {
			rawURL = rule.Apply(rawURL)
		}
	}
	return rawURL
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", x.Unrecoverable(fmt.Errorf("building request: %w", err))
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for host, headers := range refererQuirks {
		if strings.Contains(rawURL, host) {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if retryableStatus(resp.StatusCode) {
		return "", fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", x.Unrecoverable(fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}

	html := string(body)
	if strings.TrimSpace(html) == "" {
		return "", x.Unrecoverable(fmt.Errorf("empty response body from %s", rawURL))
	}
	for _, phrase := range knownErrorPhrases {
		if strings.Contains(html, phrase) {
			return "", x.Unrecoverable(fmt.Errorf("page reports removed content: %q", phrase))
		}
	}

	text := htmlmd.ExtractText(html)
	if utf8.RuneCountInString(text) < minContentRunes {
		for _, phrase := range placeholderPhrases {
			if strings.Contains(text, phrase) {
				return "", &placeholderError{}
			}
		}
		// Legitimately short pages are kept as-is.
	}

	return htmlmd.Convert(html), nil
}

func retryableStatus(code int) bool {
	return code >= 500 ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}
