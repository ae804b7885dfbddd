package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

var errNoEnvelopeCode = errors.New("response has no envelope code")

// wireEnvelope distinguishes a missing code from code 0.
type wireEnvelope struct {
	Code     *int            `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

// MapResponse turns a raw HTTP reply into an envelope or a typed error.
//
// The vendor sends its envelope with most statuses, so the body is parsed
// before the status is looked at.
func MapResponse(op types.Operation, status int, body []byte) (types.Envelope, error) {
	var w wireEnvelope
	parseErr := json.Unmarshal(body, &w)
	hasEnvelope := parseErr == nil && (w.Code != nil || w.Message != "")

	env := types.Envelope{Message: w.Message, Response: w.Response}
	if w.Code != nil {
		env.Code = *w.Code
	}

	switch {
	case status >= 200 && status < 300:
		if parseErr != nil {
			return types.Envelope{}, ierrors.NewDecodeError(op.Name, status, string(body), parseErr)
		}
		if w.Code == nil {
			return types.Envelope{}, ierrors.NewDecodeError(op.Name, status, string(body), errNoEnvelopeCode)
		}
		if env.Code != 0 {
			return types.Envelope{}, ierrors.NewBusinessError(op.Name, status, env.Code, env.Message)
		}
		return env, nil

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		msg := env.Message
		if !hasEnvelope || msg == "" {
			msg = ierrors.MsgAuthenticationFailed
		}
		return types.Envelope{}, ierrors.NewAuthenticationError(op.Name, status, env.Code, msg)

	case status == http.StatusNotFound && op.NotFoundIsEmpty && hasEnvelope:
		return types.Envelope{Code: env.Code, Message: env.Message}, nil

	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		e := ierrors.ClassifyHTTPError(op.Name, status, string(body), nil)
		if hasEnvelope && env.Message != "" {
			e.Message = env.Message
			e.Code = env.Code
		}
		return types.Envelope{}, e

	case hasEnvelope:
		return types.Envelope{}, ierrors.NewBusinessError(op.Name, status, env.Code, env.Message)

	default:
		return types.Envelope{}, ierrors.ClassifyHTTPError(op.Name, status, string(body), parseErr)
	}
}
