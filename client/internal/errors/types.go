// Package errors provides the typed error returned by every SDK operation.
// Vendor wording is kept verbatim in Message so callers can display it as-is.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind tells callers where a failure originated.
type Kind int

const (
	// KindValidation is raised locally, before any network call.
	KindValidation Kind = iota + 1
	// KindAuthentication means the vendor rejected the credentials or token.
	KindAuthentication
	// KindBusiness means the vendor accepted the request but the operation failed
	// (nothing to cancel, invalid card, unregistered billing key, ...).
	KindBusiness
	// KindTransport covers network and HTTP-layer failures.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindBusiness:
		return "business"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, vendor business failures, local validation.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// IamporterError is the single error shape surfaced to SDK callers.
type IamporterError struct {
	Kind     Kind
	Category ErrorCategory

	// Message is the vendor's text, or the local validation message.
	Message string

	Operation  string   // logical operation name, e.g. "find-by-imp-uid"
	Code       int      // vendor envelope code (0 when no envelope was read)
	StatusCode int      // HTTP status (0 for local and network errors)
	Fields     []string // offending field names for validation errors
	Body       string   // raw response body when the envelope could not be parsed

	Cause error
}

// Error returns the message unmodified.
func (e *IamporterError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *IamporterError) Unwrap() error {
	return e.Cause
}

// NewValidationError builds a locally detected input error.
func NewValidationError(operation, message string, fields ...string) *IamporterError {
	return &IamporterError{
		Kind:      KindValidation,
		Category:  Irrecoverable,
		Message:   message,
		Operation: operation,
		Fields:    fields,
	}
}

// NewAuthenticationError builds an error for a rejected token or credentials.
func NewAuthenticationError(operation string, statusCode, code int, message string) *IamporterError {
	return &IamporterError{
		Kind:       KindAuthentication,
		Category:   Irrecoverable,
		Message:    message,
		Operation:  operation,
		Code:       code,
		StatusCode: statusCode,
	}
}

// NewBusinessError builds an error for a vendor-side business failure.
func NewBusinessError(operation string, statusCode, code int, message string) *IamporterError {
	return &IamporterError{
		Kind:       KindBusiness,
		Category:   Irrecoverable,
		Message:    message,
		Operation:  operation,
		Code:       code,
		StatusCode: statusCode,
	}
}

// As extracts an *IamporterError from err's chain.
func As(err error) (*IamporterError, bool) {
	var ie *IamporterError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsKind reports whether err carries an IamporterError of the given kind.
func IsKind(err error, kind Kind) bool {
	ie, ok := As(err)
	return ok && ie.Kind == kind
}

// IsIrrecoverable returns true if the error should not be retried.
// Errors that are not IamporterErrors are treated as irrecoverable.
func IsIrrecoverable(err error) bool {
	if ie, ok := As(err); ok {
		return ie.Category == Irrecoverable
	}
	return true
}
