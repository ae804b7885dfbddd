package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPTimeoutAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}
	if err := WithHTTPTimeout(0)(c); err == nil {
		t.Fatalf("expected error for zero timeout")
	}

	// debug logging wraps transport without hiding the base one
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2 := New("key", "secret", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true), WithDebugLogging(true))
	dt, ok := c2.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("expected debugTransport, got %T", c2.http.Transport)
	}
	if _, nested := dt.base.(*debugTransport); nested {
		t.Fatalf("debug transport installed twice")
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c2.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("IAMPORTER_DEBUG", "true")
	c := New("key", "secret")
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when IAMPORTER_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c := New("key", "secret", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}

func TestNew_PanicsOnBadInput(t *testing.T) {
	t.Parallel()
	cases := map[string]func(){
		"empty key":    func() { New("", "secret") },
		"empty secret": func() { New("key", "") },
		"bad base url": func() { New("key", "secret", WithBaseURL("ftp://x")) },
		"nil client":   func() { New("key", "secret", WithHTTPClient(nil)) },
		"bad retry":    func() { New("key", "secret", WithRetry(0, 0, 0)) },
		"neg skew":     func() { New("key", "secret", WithTokenRefreshSkew(-time.Second)) },
		"nil clock":    func() { New("key", "secret", WithClock(nil)) },
	}
	for name, fn := range cases {
		fn := fn
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestOptionsAreApplied(t *testing.T) {
	t.Parallel()
	fixed := time.Unix(1700000000, 0)
	c := New("key", "secret",
		WithBaseURL("http://localhost:9999"),
		WithUserAgent("shop/1.0"),
		WithRetry(4, time.Millisecond, time.Second),
		WithTokenRefreshSkew(10*time.Second),
		WithClock(func() time.Time { return fixed }),
	)
	if c.baseURL != "http://localhost:9999" || c.userAgent != "shop/1.0" {
		t.Fatalf("unexpected client %+v", c)
	}
	if c.retry.MaxAttempts != 4 || c.skew != 10*time.Second {
		t.Fatalf("unexpected retry/skew %+v %v", c.retry, c.skew)
	}
	if got := c.expiry(&AccessToken{Now: 100, ExpiredAt: 1900}); !got.Equal(fixed.Add(1800 * time.Second)) {
		t.Fatalf("expiry not based on vendor delta: %v", got)
	}
	if got := c.expiry(&AccessToken{ExpiredAt: 1700000100}); got.Unix() != 1700000100 {
		t.Fatalf("expiry fallback wrong: %v", got)
	}
}
