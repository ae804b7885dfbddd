package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run before the token cache and transport are built, so every knob
// here is fixed for the lifetime of the Client.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP request
// (including connection, TLS handshake, redirects, and reading the response).
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the http.Client. Options applied after it (timeout,
// debug logging) modify the supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// Do not enable this option in production environments: the dumps include
// the bearer token and card data.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithBaseURL points the client at another endpoint, such as a local fake.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
		}
		c.baseURL = raw
		return nil
	}
}

// WithTokenRefreshSkew refreshes the access token this long before the
// vendor expires it. Zero disables the margin.
func WithTokenRefreshSkew(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("token refresh skew must be >= 0")
		}
		c.skew = d
		return nil
	}
}

// WithRetry re-sends requests that failed with a recoverable transport error
// (network failure, HTTP 408/429/5xx) using exponential backoff. maxAttempts
// counts the first try. Vendor business and authentication failures are never
// retried. Retrying charges is safe only when merchant_uid is reused, since the
// vendor rejects a duplicate merchant_uid.
func WithRetry(maxAttempts int, baseBackoff, maxInterval time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("retry max attempts must be >= 1")
		}
		c.retry.MaxAttempts = maxAttempts
		c.retry.BaseBackoff = baseBackoff
		c.retry.MaxInterval = maxInterval
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithClock replaces time.Now for token expiry decisions. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.now = now
		return nil
	}
}
