package client

import "github.com/iamporter/iamporter-go/client/internal/types"

// Public type aliases so callers never import internal packages.
type (
	AccessToken     = types.AccessToken
	Payment         = types.Payment
	CancelHistory   = types.CancelHistory
	PaymentList     = types.PaymentList
	PreparedPayment = types.PreparedPayment
	BillingKey      = types.BillingKey
	PaymentStatus   = types.PaymentStatus
	ListOptions     = types.ListOptions

	PreparePaymentRequest      = types.PreparePaymentRequest
	OnetimePaymentRequest      = types.OnetimePaymentRequest
	SubscriptionPaymentRequest = types.SubscriptionPaymentRequest
	ForeignPaymentRequest      = types.ForeignPaymentRequest
	CancelRequest              = types.CancelRequest
	BillingKeyRequest          = types.BillingKeyRequest
)

// Result is the outcome of an operation. Data is nil when a lookup found
// nothing; Message then holds the vendor's explanation.
type Result[T any] = types.Result[T]

const (
	StatusAll       = types.StatusAll
	StatusReady     = types.StatusReady
	StatusPaid      = types.StatusPaid
	StatusCancelled = types.StatusCancelled
	StatusFailed    = types.StatusFailed
)
