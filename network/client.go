// Package network provides the HTTP plumbing shared by providers.
package network

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = time.Minute

// Client is the shared client used when no configured one is injected.
var Client = NewClient(DefaultTimeout, false)

// NewClient returns a client with a tuned connection pool.
// With fingerprint set, HTTPS requests present a Chrome TLS fingerprint.
func NewClient(timeout time.Duration, fingerprint bool) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var transport http.RoundTripper = newTransport()
	if fingerprint {
		transport = newChromeTransport(transport)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
