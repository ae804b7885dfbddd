package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamporter/iamporter-go/client"
	"github.com/iamporter/iamporter-go/client/iamporttest"
)

const validCard = "4242-4242-4242-4242"

func newPair(t *testing.T, opts ...client.Option) (*iamporttest.Server, *client.Client) {
	t.Helper()
	srv := iamporttest.NewServer(client.SandboxAPIKey, client.SandboxAPISecret)
	t.Cleanup(srv.Close)
	c := client.NewSandbox(append([]client.Option{client.WithBaseURL(srv.URL)}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })
	return srv, c
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func TestTokenReusedWithinValidity(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	p := srv.AddPayment(client.Payment{MerchantUID: "order-1", Amount: 1000})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := c.FindByImpUID(ctx, p.ImpUID)
		require.NoError(t, err)
		require.True(t, res.Found())
		assert.Equal(t, "order-1", res.Data.MerchantUID)
	}
	assert.Equal(t, 1, srv.TokenRequests())
}

func TestExpiredTokenRefreshedExactlyOnce(t *testing.T) {
	t.Parallel()
	clock := &manualClock{now: time.Now()}
	srv, c := newPair(t, client.WithClock(clock.Now), client.WithTokenRefreshSkew(0))
	ctx := context.Background()

	_, err := c.FindByImpUID(ctx, "imp_missing")
	require.NoError(t, err)
	require.Equal(t, 1, srv.TokenRequests())

	clock.Advance(iamporttest.DefaultTokenTTL)
	_, err = c.FindByImpUID(ctx, "imp_missing")
	require.NoError(t, err)
	_, err = c.FindByImpUID(ctx, "imp_missing")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.TokenRequests())
}

func TestInvalidTokenIsAuthenticationErrorAndGetsDropped(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	ctx := context.Background()
	c.SetToken("invalid-token", time.Now().Add(5000*time.Second))

	_, err := c.PayOnetime(ctx, client.OnetimePaymentRequest{
		MerchantUID: "iamporter-test-merchant-uid",
		Amount:      5000,
		CardNumber:  "1234-1234-1234-1234",
		Expiry:      "2020-02",
		Birth:       "920220",
	})
	require.Error(t, err)
	assert.True(t, client.IsAuthentication(err))
	assert.Equal(t, client.MsgAuthenticationFailed, err.Error())
	assert.Equal(t, 0, srv.TokenRequests())

	tok, _ := c.Token()
	assert.Empty(t, tok, "rejected token must be dropped")

	_, err = c.FindByImpUID(ctx, "imp_missing")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.TokenRequests())
}

func TestBadCredentials(t *testing.T) {
	t.Parallel()
	srv := iamporttest.NewServer(client.SandboxAPIKey, client.SandboxAPISecret)
	defer srv.Close()
	c := client.New("wrong", "wrong", client.WithBaseURL(srv.URL))

	_, err := c.GetToken(context.Background())
	assert.True(t, client.IsAuthentication(err))
	assert.Equal(t, client.MsgAuthenticationFailed, err.Error())

	_, err = c.FindByImpUID(context.Background(), "imp_1")
	assert.True(t, client.IsAuthentication(err))
}

func TestGetTokenCachesResult(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	ctx := context.Background()

	res, err := c.GetToken(ctx)
	require.NoError(t, err)
	tok, exp := c.Token()
	assert.Equal(t, res.Data.AccessToken, tok)
	assert.WithinDuration(t, time.Now().Add(iamporttest.DefaultTokenTTL), exp, 5*time.Second)

	_, err = c.GetPreparedPayment(ctx, "none")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.TokenRequests())
}

func TestLookupsOfMissingRecordsAreEmptyResults(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)
	ctx := context.Background()

	p, err := c.FindByImpUID(ctx, "imp_nonexistent")
	require.NoError(t, err)
	assert.False(t, p.Found())
	assert.Equal(t, client.MsgPaymentNotFound, p.Message)

	p, err = c.FindByMerchantUID(ctx, "merchant_nonexistent")
	require.NoError(t, err)
	assert.Nil(t, p.Data)
	assert.Equal(t, client.MsgPaymentNotFound, p.Message)

	list, err := c.FindAllByMerchantUID(ctx, "merchant_nonexistent", "", client.ListOptions{})
	require.NoError(t, err)
	assert.Nil(t, list.Data)

	pp, err := c.GetPreparedPayment(ctx, "merchant_nonexistent")
	require.NoError(t, err)
	assert.Nil(t, pp.Data)
	assert.Equal(t, client.MsgPreparedNotFound, pp.Message)

	bk, err := c.GetBillingKey(ctx, "customer_nonexistent")
	require.NoError(t, err)
	assert.Nil(t, bk.Data)
}

func TestValidationHappensBeforeAnyRequest(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	ctx := context.Background()

	_, err := c.FindAllByStatus(ctx, "iamporter-test-status", client.ListOptions{})
	assert.True(t, client.IsValidation(err))
	assert.Equal(t, client.MsgUnsupportedStatus, err.Error())

	full := client.OnetimePaymentRequest{MerchantUID: "m", Amount: 5000, CardNumber: validCard, Expiry: "2099-02", Birth: "920220"}
	omit := []func(*client.OnetimePaymentRequest){
		func(r *client.OnetimePaymentRequest) { r.MerchantUID = "" },
		func(r *client.OnetimePaymentRequest) { r.Amount = 0 },
		func(r *client.OnetimePaymentRequest) { r.CardNumber = "" },
		func(r *client.OnetimePaymentRequest) { r.Expiry = "" },
		func(r *client.OnetimePaymentRequest) { r.Birth = "" },
	}
	for _, f := range omit {
		req := full
		f(&req)
		_, err := c.PayOnetime(ctx, req)
		require.True(t, client.IsValidation(err), "got %v", err)
		assert.Contains(t, err.Error(), client.MsgMissingParams+":")
	}

	assert.Equal(t, 0, srv.Requests(), "no request may reach the vendor")
}

func TestVendorBusinessFailures(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)
	ctx := context.Background()

	_, err := c.PayOnetime(ctx, client.OnetimePaymentRequest{
		MerchantUID: "iamporter-test-merchant-uid", Amount: 5000,
		CardNumber: "1234-1234-1234-1234", Expiry: "2020-02", Birth: "920220",
	})
	assert.True(t, client.IsBusiness(err))
	assert.Equal(t, client.MsgInvalidCardNumber, err.Error())

	_, err = c.PaySubscription(ctx, client.SubscriptionPaymentRequest{
		CustomerUID: "iamporter-test-customer-uid", MerchantUID: "iamporter-test-merchant-uid", Amount: 5000,
	})
	assert.True(t, client.IsBusiness(err))
	assert.Equal(t, client.MsgUnknownCustomer, err.Error())

	_, err = c.CancelByImpUID(ctx, "imp_nonexistent", client.CancelRequest{})
	assert.True(t, client.IsBusiness(err))
	assert.Equal(t, client.MsgNothingToCancel, err.Error())

	_, err = c.CancelByMerchantUID(ctx, "merchant_nonexistent", client.CancelRequest{})
	assert.Equal(t, client.MsgNothingToCancel, err.Error())

	ie, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, client.KindBusiness, ie.Kind)
	assert.Equal(t, "cancel-by-merchant-uid", ie.Operation)
}

func TestPaymentLifecycle(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)
	ctx := context.Background()

	prep, err := c.CreatePreparedPayment(ctx, client.PreparePaymentRequest{MerchantUID: "order-42", Amount: 12000})
	require.NoError(t, err)
	assert.Equal(t, float64(12000), prep.Data.Amount)

	got, err := c.GetPreparedPayment(ctx, "order-42")
	require.NoError(t, err)
	assert.Equal(t, "order-42", got.Data.MerchantUID)

	paid, err := c.PayOnetime(ctx, client.OnetimePaymentRequest{
		MerchantUID: "order-42", Amount: 12000, CardNumber: validCard,
		Expiry: "2099-12", Birth: "920220", CustomerUID: "cust-1",
	})
	require.NoError(t, err)
	assert.Equal(t, client.StatusPaid, paid.Data.Status)
	assert.NotEmpty(t, paid.Data.ImpUID)

	again, err := c.PaySubscription(ctx, client.SubscriptionPaymentRequest{CustomerUID: "cust-1", MerchantUID: "order-43", Amount: 3000})
	require.NoError(t, err)
	assert.Equal(t, "cust-1", again.Data.CustomerUID)

	partial, err := c.CancelByImpUID(ctx, paid.Data.ImpUID, client.CancelRequest{Amount: 2000, Reason: "부분취소"})
	require.NoError(t, err)
	assert.Equal(t, client.StatusPaid, partial.Data.Status)
	assert.Equal(t, float64(2000), partial.Data.CancelAmount)

	full, err := c.Cancel(ctx, client.CancelRequest{MerchantUID: "order-42"})
	require.NoError(t, err)
	assert.Equal(t, client.StatusCancelled, full.Data.Status)
	assert.Len(t, full.Data.CancelHistory, 2)
	assert.False(t, full.Data.CancelledTime().IsZero())

	byMerchant, err := c.FindByMerchantUID(ctx, "order-43")
	require.NoError(t, err)
	assert.Equal(t, again.Data.ImpUID, byMerchant.Data.ImpUID)

	paidList, err := c.FindAllByStatus(ctx, client.StatusPaid, client.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, paidList.Data.Total)

	all, err := c.FindAllByStatus(ctx, "", client.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Data.Total)

	history, err := c.FindAllByMerchantUID(ctx, "order-42", client.StatusCancelled, client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, history.Data.List, 1)
}

func TestBillingKeys(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)
	ctx := context.Background()

	_, err := c.CreateBillingKey(ctx, "cust-9", client.BillingKeyRequest{CardNumber: "1234-1234-1234-1234", Expiry: "2099-01", Birth: "920220"})
	assert.Equal(t, client.MsgInvalidCardNumber, err.Error())

	created, err := c.CreateBillingKey(ctx, "cust-9", client.BillingKeyRequest{CardNumber: validCard, Expiry: "2099-01", Birth: "920220", CustomerName: "홍길동"})
	require.NoError(t, err)
	assert.Equal(t, "cust-9", created.Data.CustomerUID)

	got, err := c.GetBillingKey(ctx, "cust-9")
	require.NoError(t, err)
	assert.Equal(t, "홍길동", got.Data.CustomerName)

	deleted, err := c.DeleteBillingKey(ctx, "cust-9")
	require.NoError(t, err)
	assert.Equal(t, "cust-9", deleted.Data.CustomerUID)

	_, err = c.DeleteBillingKey(ctx, "cust-9")
	assert.True(t, client.IsBusiness(err))
	assert.Equal(t, client.MsgUnknownCustomer, err.Error())
}

func TestRetryIsOptIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, plain := newPair(t)
	_, err := plain.GetToken(ctx)
	require.NoError(t, err)
	srv.FailNext(503)
	_, err = plain.FindByImpUID(ctx, "imp_1")
	assert.True(t, client.IsTransport(err))
	assert.True(t, client.IsRetryable(err))

	srv2, retrying := newPair(t, client.WithRetry(3, time.Millisecond, 2*time.Millisecond))
	_, err = retrying.GetToken(ctx)
	require.NoError(t, err)
	srv2.FailNext(503, 502)
	res, err := retrying.FindByImpUID(ctx, "imp_1")
	require.NoError(t, err)
	assert.False(t, res.Found())
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	p := srv.AddPayment(client.Payment{MerchantUID: "order-c", Amount: 100})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.FindByImpUID(context.Background(), p.ImpUID)
			assert.NoError(t, err)
			assert.True(t, res.Found())
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, srv.TokenRequests(), 1)
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()
	c := client.NewSandbox()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestPing(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Ping(ctx))
	assert.Equal(t, 1, srv.TokenRequests())

	bad := client.New("nope", "nope", client.WithBaseURL(srv.URL))
	defer bad.Close()
	err := bad.Ping(ctx)
	require.Error(t, err)
	assert.True(t, client.IsAuthentication(err))
}

func TestPayForeign(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)
	ctx := context.Background()

	res, err := c.PayForeign(ctx, client.ForeignPaymentRequest{
		MerchantUID: "order-foreign", Amount: 12000, CardNumber: validCard, Expiry: "2099-01", CVC: "123",
	})
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, client.StatusPaid, res.Data.Status)
	assert.Equal(t, "424242******4242", res.Data.CardNumber)

	_, err = c.PayForeign(ctx, client.ForeignPaymentRequest{
		MerchantUID: "order-foreign-2", Amount: 12000, CardNumber: "1234-1234-1234-1234", Expiry: "2099-01",
	})
	require.Error(t, err)
	assert.True(t, client.IsBusiness(err))
	assert.Equal(t, client.MsgInvalidCardNumber, err.Error())
}

func TestCancelWithoutIdentifierIsBusinessError(t *testing.T) {
	t.Parallel()
	srv, c := newPair(t)

	_, err := c.Cancel(context.Background(), client.CancelRequest{Reason: "no id"})
	require.Error(t, err)
	assert.True(t, client.IsBusiness(err), "got %v", err)
	assert.Equal(t, client.MsgIdentifierRequired, err.Error())
	assert.Equal(t, 2, srv.Requests(), "token plus cancel")
}

func TestGetPreparedPaymentWithoutMerchantUIDFindsNothing(t *testing.T) {
	t.Parallel()
	_, c := newPair(t)

	res, err := c.GetPreparedPayment(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, client.MsgPreparedNotFound, res.Message)
}

func TestInvalidTokenFailsEveryOperation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cases := map[string]func(*client.Client) error{
		"find-by-imp-uid": func(c *client.Client) error {
			_, err := c.FindByImpUID(ctx, "imp_448280090638")
			return err
		},
		"find-by-merchant-uid": func(c *client.Client) error {
			_, err := c.FindByMerchantUID(ctx, "iamporter-test-merchant-uid")
			return err
		},
		"find-all-by-merchant-uid": func(c *client.Client) error {
			_, err := c.FindAllByMerchantUID(ctx, "iamporter-test-merchant-uid", client.StatusAll, client.ListOptions{})
			return err
		},
		"find-all-by-status": func(c *client.Client) error {
			_, err := c.FindAllByStatus(ctx, client.StatusPaid, client.ListOptions{})
			return err
		},
		"create-prepared-payment": func(c *client.Client) error {
			_, err := c.CreatePreparedPayment(ctx, client.PreparePaymentRequest{MerchantUID: "m1", Amount: 1000})
			return err
		},
		"get-prepared-payment": func(c *client.Client) error {
			_, err := c.GetPreparedPayment(ctx, "")
			return err
		},
		"pay-onetime": func(c *client.Client) error {
			_, err := c.PayOnetime(ctx, client.OnetimePaymentRequest{MerchantUID: "m1", Amount: 1000, CardNumber: validCard, Expiry: "2099-01", Birth: "920220"})
			return err
		},
		"pay-subscription": func(c *client.Client) error {
			_, err := c.PaySubscription(ctx, client.SubscriptionPaymentRequest{CustomerUID: "cust-1", MerchantUID: "m1", Amount: 1000})
			return err
		},
		"pay-foreign": func(c *client.Client) error {
			_, err := c.PayForeign(ctx, client.ForeignPaymentRequest{MerchantUID: "m1", Amount: 1000, CardNumber: validCard, Expiry: "2099-01"})
			return err
		},
		"cancel-by-imp-uid": func(c *client.Client) error {
			_, err := c.CancelByImpUID(ctx, "imp_448280090638", client.CancelRequest{})
			return err
		},
		"cancel-by-merchant-uid": func(c *client.Client) error {
			_, err := c.CancelByMerchantUID(ctx, "iamporter-test-merchant-uid", client.CancelRequest{})
			return err
		},
		"cancel": func(c *client.Client) error {
			_, err := c.Cancel(ctx, client.CancelRequest{})
			return err
		},
		"create-billing-key": func(c *client.Client) error {
			_, err := c.CreateBillingKey(ctx, "cust-1", client.BillingKeyRequest{CardNumber: validCard, Expiry: "2099-01", Birth: "920220"})
			return err
		},
		"get-billing-key": func(c *client.Client) error {
			_, err := c.GetBillingKey(ctx, "cust-1")
			return err
		},
		"delete-billing-key": func(c *client.Client) error {
			_, err := c.DeleteBillingKey(ctx, "cust-1")
			return err
		},
	}
	for name, run := range cases {
		name, run := name, run
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv, c := newPair(t)
			c.SetToken("invalid-token", time.Now().Add(5000*time.Second))

			err := run(c)
			require.Error(t, err)
			assert.True(t, client.IsAuthentication(err), "got %v", err)
			assert.Equal(t, client.MsgAuthenticationFailed, err.Error())
			assert.Equal(t, 0, srv.TokenRequests())
		})
	}
}
