package api

import (
	"context"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

func PayOnetime(ctx context.Context, c Caller, req types.OnetimePaymentRequest) (*types.Result[types.Payment], error) {
	p, err := paramsOf(types.OpPayOnetime, req)
	if err != nil {
		return nil, err
	}
	return call[types.Payment](ctx, c, types.OpPayOnetime, p)
}

func PaySubscription(ctx context.Context, c Caller, req types.SubscriptionPaymentRequest) (*types.Result[types.Payment], error) {
	p, err := paramsOf(types.OpPaySubscription, req)
	if err != nil {
		return nil, err
	}
	return call[types.Payment](ctx, c, types.OpPaySubscription, p)
}

func PayForeign(ctx context.Context, c Caller, req types.ForeignPaymentRequest) (*types.Result[types.Payment], error) {
	p, err := paramsOf(types.OpPayForeign, req)
	if err != nil {
		return nil, err
	}
	return call[types.Payment](ctx, c, types.OpPayForeign, p)
}
