// Package token caches the vendor access token and refreshes it when it expires.
//
// There is no single-flight: callers that observe an expired token at the same
// time may each fetch a new one. Tokens are interchangeable credentials, so the
// last write wins.
package token

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultRefreshSkew refreshes a token shortly before the vendor expires it.
const DefaultRefreshSkew = 60 * time.Second

// Token is an access token and the local time at which it stops being valid.
type Token struct {
	Value    string
	ExpireAt time.Time
}

// Fetcher obtains a fresh token from the vendor.
type Fetcher func(ctx context.Context) (Token, error)

// Manager owns the cached token.
type Manager struct {
	fetch Fetcher
	skew  time.Duration
	now   func() time.Time

	mu  sync.Mutex
	cur Token
}

// NewManager builds a Manager with no token held. A negative skew is treated
// as zero; nil now defaults to time.Now.
func NewManager(fetch Fetcher, skew time.Duration, now func() time.Time) *Manager {
	if skew < 0 {
		skew = 0
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{fetch: fetch, skew: skew, now: now}
}

// Get returns the cached token, fetching a new one when none is held or the
// held one is within skew of expiring.
func (m *Manager) Get(ctx context.Context) (string, error) {
	if v, ok := m.reusable(); ok {
		return v, nil
	}

	tok, err := m.fetch(ctx)
	if err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("iamport token refresh failed")
		return "", err
	}
	refreshesTotal.WithLabelValues("ok").Inc()

	m.mu.Lock()
	m.cur = tok
	m.mu.Unlock()
	return tok.Value, nil
}

// Set seeds the cache, e.g. with a token persisted by another process.
func (m *Manager) Set(value string, expireAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = Token{Value: value, ExpireAt: expireAt}
}

// Invalidate drops the cached token only if it is still value, so a token
// refreshed concurrently by another caller survives.
func (m *Manager) Invalidate(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur.Value == value {
		m.cur = Token{}
	}
}

// Snapshot returns the cached token, which may be empty or expired.
func (m *Manager) Snapshot() Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

func (m *Manager) reusable() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur.Value == "" || m.cur.ExpireAt.IsZero() {
		return "", false
	}
	if !m.now().Add(m.skew).Before(m.cur.ExpireAt) {
		return "", false
	}
	return m.cur.Value, true
}
