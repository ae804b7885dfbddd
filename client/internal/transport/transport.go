// Package transport sends one vendor request and maps the reply onto either an
// envelope or an *IamporterError.
package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

// TokenSource supplies the bearer token for authenticated operations.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
	Invalidate(value string)
}

// RetryPolicy controls the opt-in retry of recoverable transport errors.
// MaxAttempts counts the first try; values below 2 disable retrying.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxInterval time.Duration
}

// Enabled reports whether more than one attempt is allowed.
func (p RetryPolicy) Enabled() bool { return p.MaxAttempts > 1 }

// Config holds everything the transport needs besides the token source.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Retry      RetryPolicy
}

// Transport is safe for concurrent use.
type Transport struct {
	rc     *resty.Client
	tokens TokenSource
	retry  RetryPolicy
}

// New builds a Transport. tokens may be nil when only unauthenticated
// operations are called.
func New(cfg Config, tokens TokenSource) *Transport {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{})
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	retry := cfg.Retry
	if retry.BaseBackoff <= 0 {
		retry.BaseBackoff = 100 * time.Millisecond
	}
	if retry.MaxInterval <= 0 {
		retry.MaxInterval = 5 * time.Second
	}
	return &Transport{rc: rc, tokens: tokens, retry: retry}
}

// Call executes op with p and returns the vendor envelope. A lookup that found
// nothing returns an envelope without data and a nil error.
func (t *Transport) Call(ctx context.Context, op types.Operation, p types.Params) (types.Envelope, error) {
	if !t.retry.Enabled() {
		return t.attempt(ctx, op, p)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = t.retry.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = t.retry.MaxInterval
	exp.Reset()

	attempts := 0
	for {
		env, err := t.attempt(ctx, op, p)
		if err == nil {
			return env, nil
		}
		if ierrors.IsIrrecoverable(err) || ctx.Err() != nil {
			return env, err
		}
		if attempts >= t.retry.MaxAttempts-1 {
			return env, err
		}

		attempts++
		wait := exp.NextBackOff()
		retriesTotal.WithLabelValues(op.Name).Inc()
		logRetry(op, attempts, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return types.Envelope{}, ierrors.NewNetworkError(op.Name, ctx.Err())
		}
	}
}

func (t *Transport) attempt(ctx context.Context, op types.Operation, p types.Params) (types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return types.Envelope{}, ierrors.NewNetworkError(op.Name, err)
	}

	req := t.rc.R().SetContext(ctx)

	var tok string
	if op.Auth {
		if t.tokens == nil {
			return types.Envelope{}, ierrors.NewAuthenticationError(op.Name, 0, 0, ierrors.MsgAuthenticationFailed)
		}
		var err error
		if tok, err = t.tokens.Get(ctx); err != nil {
			return types.Envelope{}, err
		}
		req.SetAuthToken(tok)
	}

	path, rest := op.BuildPath(p)
	switch op.Encoding {
	case types.EncodingJSON:
		req.SetHeader("Content-Type", "application/json").SetBody(map[string]any(rest))
	case types.EncodingForm:
		req.SetFormDataFromValues(rest.Values())
	default:
		if len(rest) > 0 {
			req.SetQueryParamsFromValues(rest.Values())
		}
	}

	resp, err := req.Execute(op.Method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Envelope{}, ierrors.NewNetworkError(op.Name, ctxErr)
		}
		return types.Envelope{}, ierrors.NewNetworkError(op.Name, err)
	}

	env, mapErr := MapResponse(op, resp.StatusCode(), resp.Body())
	if ierrors.IsKind(mapErr, ierrors.KindAuthentication) && tok != "" {
		t.tokens.Invalidate(tok)
	}
	return env, mapErr
}

// Close releases idle connections held by the underlying client.
func (t *Transport) Close() {
	t.rc.GetClient().CloseIdleConnections()
}
