package types

import ierrors "github.com/iamporter/iamporter-go/client/internal/errors"

// PaymentStatus is the vendor's payment state, also used as a list filter.
type PaymentStatus string

const (
	StatusAll       PaymentStatus = "all"
	StatusReady     PaymentStatus = "ready"
	StatusPaid      PaymentStatus = "paid"
	StatusCancelled PaymentStatus = "cancelled"
	StatusFailed    PaymentStatus = "failed"
)

var allowedStatuses = map[PaymentStatus]struct{}{
	StatusAll:       {},
	StatusReady:     {},
	StatusPaid:      {},
	StatusCancelled: {},
	StatusFailed:    {},
}

// ValidateStatus normalises an empty filter to StatusAll and rejects values the
// vendor does not support.
func ValidateStatus(operation string, s PaymentStatus) (PaymentStatus, error) {
	if s == "" {
		return StatusAll, nil
	}
	if _, ok := allowedStatuses[s]; !ok {
		return "", ierrors.NewValidationError(operation, ierrors.MsgUnsupportedStatus, "payment_status")
	}
	return s, nil
}
