package errors

import (
	"fmt"
	"net/http"
)

// ClassifyHTTPError builds a transport error for a non-2xx response that did not
// carry a vendor envelope.
//   - 4xx client errors (except 408 and 429) are irrecoverable
//   - 5xx server errors are recoverable
func ClassifyHTTPError(operation string, statusCode int, body string, underlyingErr error) *IamporterError {
	return &IamporterError{
		Kind:       KindTransport,
		Category:   getHTTPErrorCategory(statusCode),
		Message:    fmt.Sprintf("%s: HTTP %d", operation, statusCode),
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Cause:      underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// NewNetworkError creates a transport error for network-level failures.
// Network errors are recoverable as they may be transient.
func NewNetworkError(operation string, err error) *IamporterError {
	return &IamporterError{
		Kind:      KindTransport,
		Category:  Recoverable,
		Message:   fmt.Sprintf("%s network error: %v", operation, err),
		Operation: operation,
		Cause:     err,
	}
}

// NewDecodeError wraps a malformed response body. Not retried: the same bytes
// will come back.
func NewDecodeError(operation string, statusCode int, body string, err error) *IamporterError {
	return &IamporterError{
		Kind:       KindTransport,
		Category:   Irrecoverable,
		Message:    fmt.Sprintf("%s: malformed response: %v", operation, err),
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Cause:      err,
	}
}
