package client

import (
	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
)

// Error is returned by every operation. Error() is the vendor's message, or
// the local validation message, unmodified.
type Error = ierrors.IamporterError

// ErrorKind tells where a failure originated.
type ErrorKind = ierrors.Kind

const (
	KindValidation     = ierrors.KindValidation
	KindAuthentication = ierrors.KindAuthentication
	KindBusiness       = ierrors.KindBusiness
	KindTransport      = ierrors.KindTransport
)

// Messages the SDK produces locally, and vendor messages callers commonly
// match on.
const (
	MsgMissingParams        = ierrors.MsgMissingParams
	MsgUnsupportedStatus    = ierrors.MsgUnsupportedStatus
	MsgIdentifierRequired   = ierrors.MsgIdentifierRequired
	MsgAuthenticationFailed = ierrors.MsgAuthenticationFailed
	MsgPaymentNotFound      = ierrors.MsgPaymentNotFound
	MsgPreparedNotFound     = ierrors.MsgPreparedNotFound
	MsgNothingToCancel      = ierrors.MsgNothingToCancel
	MsgUnknownCustomer      = ierrors.MsgUnknownCustomer
	MsgInvalidCardNumber    = ierrors.MsgInvalidCardNumber
)

// AsError extracts the SDK error from err's chain.
func AsError(err error) (*Error, bool) { return ierrors.As(err) }

func IsValidation(err error) bool     { return ierrors.IsKind(err, KindValidation) }
func IsAuthentication(err error) bool { return ierrors.IsKind(err, KindAuthentication) }
func IsBusiness(err error) bool       { return ierrors.IsKind(err, KindBusiness) }
func IsTransport(err error) bool      { return ierrors.IsKind(err, KindTransport) }

// IsRetryable reports whether err is a transient transport failure.
func IsRetryable(err error) bool { return err != nil && !ierrors.IsIrrecoverable(err) }
