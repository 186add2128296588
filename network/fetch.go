package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anikatalog/anikatalog/constant"
	"github.com/anikatalog/anikatalog/log"
	"github.com/anikatalog/anikatalog/util"
	"golang.org/x/time/rate"
)

// Fetcher retrieves raw page bodies.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, query url.Values) ([]byte, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPFetcher is a Fetcher backed by an http.Client.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string

	// Limiter paces outgoing requests. Nil means unlimited.
	Limiter *rate.Limiter
}

// NewFetcher returns a fetcher using client, or the shared Client when nil.
func NewFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = Client
	}

	return &HTTPFetcher{
		Client:    client,
		UserAgent: constant.UserAgent,
	}
}

// Fetch issues a GET for rawURL with query merged into its existing query string.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	if len(query) > 0 {
		q := u.Query()
		for k, values := range query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")

	log.Debugf("GET %s", u)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
