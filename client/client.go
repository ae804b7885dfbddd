package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/iamporter/iamporter-go/client/internal/api"
	"github.com/iamporter/iamporter-go/client/internal/token"
	"github.com/iamporter/iamporter-go/client/internal/transport"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

// DefaultBaseURL is the production vendor endpoint.
const DefaultBaseURL = "https://api.iamport.kr"

// Public test credentials published by the vendor for its sandbox merchant.
const (
	SandboxAPIKey    = "imp_apikey"
	SandboxAPISecret = "ekKoeW8RyKuT0zgaZsUtXXTLQ4AhPFW3ZGseDA6bkA5lamv9OqDMnxyeB9wqOsuO9W3Mx9YSJ4dTqJ3f"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the vendor REST API. It is safe for concurrent use; the only
// shared mutable state is the cached access token.
type Client struct {
	apiKey    string
	apiSecret string

	baseURL   string
	userAgent string
	http      *http.Client
	retry     transport.RetryPolicy
	skew      time.Duration
	now       func() time.Time

	tokens *token.Manager
	tr     *transport.Transport

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given REST API credentials.
// It panics if either credential is empty or an option fails, matching the
// way misconfiguration is treated at start-up.
func New(apiKey, apiSecret string, opts ...Option) *Client {
	if apiKey == "" {
		panic("apiKey cannot be empty")
	}
	if apiSecret == "" {
		panic("apiSecret cannot be empty")
	}

	c := &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   DefaultBaseURL,
		userAgent: "iamporter-go/" + Version,
		http:      &http.Client{Timeout: 30 * time.Second},
		skew:      token.DefaultRefreshSkew,
		now:       time.Now,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	c.tokens = token.NewManager(c.fetchToken, c.skew, c.now)
	c.tr = transport.New(transport.Config{
		HTTPClient: c.http,
		BaseURL:    c.baseURL,
		UserAgent:  c.userAgent,
		Retry:      c.retry,
	}, c.tokens)
	return c
}

// NewSandbox constructs a Client using the vendor's public test credentials.
// Charges made with it are never settled.
func NewSandbox(opts ...Option) *Client {
	return New(SandboxAPIKey, SandboxAPISecret, opts...)
}

// SetToken seeds the token cache, e.g. with a token persisted by another
// process. The token is used until expireAt.
func (c *Client) SetToken(accessToken string, expireAt time.Time) {
	c.tokens.Set(accessToken, expireAt)
}

// Token returns the cached token and its expiry, which may be empty.
func (c *Client) Token() (string, time.Time) {
	t := c.tokens.Snapshot()
	return t.Value, t.ExpireAt
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.tr.Close()
	return nil
}

// --------------------------------------------------------------------
// Token operations
// --------------------------------------------------------------------

// GetToken always asks the vendor for a fresh token and caches it for the
// calls that follow.
func (c *Client) GetToken(ctx context.Context) (*Result[AccessToken], error) {
	start := time.Now()
	res, tok, err := c.requestToken(ctx)
	if err == nil {
		c.tokens.Set(tok.Value, tok.ExpireAt)
	}
	return observe(types.OpGetToken, start, res, err)
}

// Ping reports whether the vendor accepts the credentials. A cached token
// that is still valid counts as success without a network call.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.tokens.Get(ctx)
	return err
}

func (c *Client) fetchToken(ctx context.Context) (token.Token, error) {
	start := time.Now()
	res, tok, err := c.requestToken(ctx)
	_, err = observe(types.OpGetToken, start, res, err)
	return tok, err
}

func (c *Client) requestToken(ctx context.Context) (*Result[AccessToken], token.Token, error) {
	res, err := api.GetToken(ctx, c.tr, types.TokenRequest{ImpKey: c.apiKey, ImpSecret: c.apiSecret})
	if err != nil {
		return nil, token.Token{}, err
	}
	return res, token.Token{Value: res.Data.AccessToken, ExpireAt: c.expiry(res.Data)}, nil
}

// expiry converts the vendor's expired_at onto the local clock using the
// vendor's own "now", so clock drift between the two does not matter.
func (c *Client) expiry(at *AccessToken) time.Time {
	if at.Now > 0 && at.ExpiredAt > at.Now {
		return c.now().Add(time.Duration(at.ExpiredAt-at.Now) * time.Second)
	}
	return time.Unix(at.ExpiredAt, 0)
}

// --------------------------------------------------------------------
// Payment lookups - delegated to internal/api
// --------------------------------------------------------------------

// FindByImpUID looks a payment up by the vendor's id. A missing payment is not
// an error: the result has no Data and carries the vendor's message.
func (c *Client) FindByImpUID(ctx context.Context, impUID string) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.FindByImpUID(ctx, c.tr, impUID)
	return observe(types.OpFindByImpUID, start, res, err)
}

// FindByMerchantUID looks up the latest payment for an order id.
func (c *Client) FindByMerchantUID(ctx context.Context, merchantUID string) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.FindByMerchantUID(ctx, c.tr, merchantUID)
	return observe(types.OpFindByMerchantUID, start, res, err)
}

// FindAllByMerchantUID lists every payment attempt for an order id, filtered
// by status. An empty status means StatusAll.
func (c *Client) FindAllByMerchantUID(ctx context.Context, merchantUID string, status PaymentStatus, opts ListOptions) (*Result[PaymentList], error) {
	start := time.Now()
	res, err := api.FindAllByMerchantUID(ctx, c.tr, merchantUID, status, opts)
	return observe(types.OpFindAllByMerchantUID, start, res, err)
}

// FindAllByStatus lists payments in a status. An unsupported status fails
// locally without a network call.
func (c *Client) FindAllByStatus(ctx context.Context, status PaymentStatus, opts ListOptions) (*Result[PaymentList], error) {
	start := time.Now()
	res, err := api.FindAllByStatus(ctx, c.tr, status, opts)
	return observe(types.OpFindAllByStatus, start, res, err)
}

// --------------------------------------------------------------------
// Prepared payments
// --------------------------------------------------------------------

// CreatePreparedPayment registers the amount the vendor must see for a
// merchant_uid before the buyer pays.
func (c *Client) CreatePreparedPayment(ctx context.Context, req PreparePaymentRequest) (*Result[PreparedPayment], error) {
	start := time.Now()
	res, err := api.CreatePreparedPayment(ctx, c.tr, req)
	return observe(types.OpCreatePreparedPayment, start, res, err)
}

func (c *Client) GetPreparedPayment(ctx context.Context, merchantUID string) (*Result[PreparedPayment], error) {
	start := time.Now()
	res, err := api.GetPreparedPayment(ctx, c.tr, merchantUID)
	return observe(types.OpGetPreparedPayment, start, res, err)
}

// --------------------------------------------------------------------
// Charges
// --------------------------------------------------------------------

// PayOnetime charges a card directly. A vendor refusal (invalid card, declined)
// is a KindBusiness error carrying the vendor's message.
func (c *Client) PayOnetime(ctx context.Context, req OnetimePaymentRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.PayOnetime(ctx, c.tr, req)
	return observe(types.OpPayOnetime, start, res, err)
}

// PaySubscription charges the card stored under req.CustomerUID.
func (c *Client) PaySubscription(ctx context.Context, req SubscriptionPaymentRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.PaySubscription(ctx, c.tr, req)
	return observe(types.OpPaySubscription, start, res, err)
}

func (c *Client) PayForeign(ctx context.Context, req ForeignPaymentRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.PayForeign(ctx, c.tr, req)
	return observe(types.OpPayForeign, start, res, err)
}

// --------------------------------------------------------------------
// Cancellation
// --------------------------------------------------------------------

// CancelByImpUID cancels a payment in full, or partially when req.Amount is set.
func (c *Client) CancelByImpUID(ctx context.Context, impUID string, req CancelRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.CancelByImpUID(ctx, c.tr, impUID, req)
	return observe(types.OpCancelByImpUID, start, res, err)
}

func (c *Client) CancelByMerchantUID(ctx context.Context, merchantUID string, req CancelRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.CancelByMerchantUID(ctx, c.tr, merchantUID, req)
	return observe(types.OpCancelByMerchantUID, start, res, err)
}

// Cancel uses whichever of req.ImpUID and req.MerchantUID is set. With neither
// the vendor refuses with a Business error carrying MsgIdentifierRequired.
func (c *Client) Cancel(ctx context.Context, req CancelRequest) (*Result[Payment], error) {
	start := time.Now()
	res, err := api.Cancel(ctx, c.tr, req)
	return observe(types.OpCancel, start, res, err)
}

// --------------------------------------------------------------------
// Billing keys
// --------------------------------------------------------------------

func (c *Client) CreateBillingKey(ctx context.Context, customerUID string, req BillingKeyRequest) (*Result[BillingKey], error) {
	start := time.Now()
	res, err := api.CreateBillingKey(ctx, c.tr, customerUID, req)
	return observe(types.OpCreateBillingKey, start, res, err)
}

// GetBillingKey returns an empty result when nothing is stored for customerUID.
func (c *Client) GetBillingKey(ctx context.Context, customerUID string) (*Result[BillingKey], error) {
	start := time.Now()
	res, err := api.GetBillingKey(ctx, c.tr, customerUID)
	return observe(types.OpGetBillingKey, start, res, err)
}

func (c *Client) DeleteBillingKey(ctx context.Context, customerUID string) (*Result[BillingKey], error) {
	start := time.Now()
	res, err := api.DeleteBillingKey(ctx, c.tr, customerUID)
	return observe(types.OpDeleteBillingKey, start, res, err)
}
