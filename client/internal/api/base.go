package api

import (
	"context"
	"net/http"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

// Caller sends one operation to the vendor. *transport.Transport satisfies it.
type Caller interface {
	Call(ctx context.Context, op types.Operation, p types.Params) (types.Envelope, error)
}

// call validates p against op, sends it and decodes the payload into T.
// Validation failures never reach the Caller.
func call[T any](ctx context.Context, c Caller, op types.Operation, p types.Params) (*types.Result[T], error) {
	if err := op.Validate(p); err != nil {
		return nil, err
	}
	env, err := c.Call(ctx, op, p)
	if err != nil {
		return nil, err
	}
	res, err := types.Decode[T](env)
	if err != nil {
		return nil, ierrors.NewDecodeError(op.Name, http.StatusOK, string(env.Response), err)
	}
	return res, nil
}

type paramser interface {
	Params() (types.Params, error)
}

// paramsOf flattens req, reporting encoding failures as validation errors.
func paramsOf(op types.Operation, req paramser) (types.Params, error) {
	p, err := req.Params()
	if err != nil {
		e := ierrors.NewValidationError(op.Name, err.Error())
		e.Cause = err
		return nil, e
	}
	return p, nil
}
