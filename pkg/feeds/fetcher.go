package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/all-man/site-feeds/pkg/httpclient"
)

const (
	// DefaultUserAgent identifies the bot to every source it fetches from.
	DefaultUserAgent = "all-man-bot/1.1 (+https://github.com/)"
	// DefaultTimeout bounds a single request, including reading the body.
	DefaultTimeout = 25 * time.Second

	maxSnippetLen = 512
)

// StatusError reports a response outside the 2xx range. It is treated like any
// other transport failure by callers.
type StatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d body: %s", e.URL, e.StatusCode, e.Snippet)
}

// Fetcher performs plain GET requests with a fixed user agent and returns the
// full response body.
type Fetcher struct {
	client    httpclient.Client
	userAgent string
}

// NewFetcher builds a Fetcher over client. A nil client gets a resty client
// with DefaultTimeout; an empty userAgent falls back to DefaultUserAgent.
func NewFetcher(client httpclient.Client, userAgent string) *Fetcher {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	if client == nil {
		client = httpclient.NewRestyClient(DefaultTimeout, userAgent)
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch returns the body of url. Errors are never retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Get(ctx, url, map[string]string{"User-Agent": f.userAgent})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: url, StatusCode: code, Snippet: responseSnippet(body)}
	}
	return body, nil
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		cut := maxSnippetLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
