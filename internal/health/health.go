// Package health tracks whether the payment vendor is reachable with the
// configured credentials.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger returns nil when the component is healthy.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker is implemented by component-level checkers.
type Checker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// PingChecker turns a Pinger into a Checker by pinging it on an interval.
type PingChecker struct {
	name    string
	pinger  Pinger
	timeout time.Duration
	healthy atomic.Int32
	log     zerolog.Logger
}

func NewPingChecker(log zerolog.Logger, name string, p Pinger, timeout time.Duration) *PingChecker {
	return &PingChecker{name: name, pinger: p, timeout: timeout, log: log}
}

func (c *PingChecker) Name() string    { return c.name }
func (c *PingChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Check pings once and records the outcome.
func (c *PingChecker) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.pinger.Ping(ctx); err != nil {
		c.log.Warn().Err(err).Str("component", c.name).Msg("health ping failed")
		c.healthy.Store(0)
		return
	}
	c.healthy.Store(1)
}

func (c *PingChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// ServiceChecker aggregates component checkers into a single service health flag.
type ServiceChecker struct {
	healthy atomic.Int32
	deps    []Checker
	log     zerolog.Logger
}

func NewServiceChecker(log zerolog.Logger, deps ...Checker) *ServiceChecker {
	return &ServiceChecker{deps: deps, log: log}
}

// IsHealthy returns cached service health.
func (h *ServiceChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Start runs every dependency checker and periodically folds their state
// into the service flag until ctx is done.
func (h *ServiceChecker) Start(ctx context.Context, interval time.Duration) {
	for _, d := range h.deps {
		go d.Start(ctx, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(0)
	eval := func() {
		cur := int32(1)
		for _, c := range h.deps {
			if !c.IsHealthy() {
				cur = 0
			}
		}
		h.healthy.Store(cur)
		if cur != prev {
			if cur == 1 {
				h.log.Info().Msg("service health: UP")
			} else {
				h.log.Error().Msg("service health: DOWN")
			}
			prev = cur
		}
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}

type status struct {
	Status string `json:"status"`
}

// Handler answers 200 {"status":"UP"} or 503 {"status":"DOWN"}.
func (h *ServiceChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, body := http.StatusOK, status{Status: "UP"}
		if !h.IsHealthy() {
			code, body = http.StatusServiceUnavailable, status{Status: "DOWN"}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	})
}
