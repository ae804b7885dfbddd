package api

import (
	"context"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// CancelByImpUID ignores req.MerchantUID; the vendor would prefer imp_uid anyway.
func CancelByImpUID(ctx context.Context, c Caller, impUID string, req types.CancelRequest) (*types.Result[types.Payment], error) {
	req.ImpUID, req.MerchantUID = impUID, ""
	return cancel(ctx, c, types.OpCancelByImpUID, req)
}

func CancelByMerchantUID(ctx context.Context, c Caller, merchantUID string, req types.CancelRequest) (*types.Result[types.Payment], error) {
	req.ImpUID, req.MerchantUID = "", merchantUID
	return cancel(ctx, c, types.OpCancelByMerchantUID, req)
}

// Cancel accepts either identifier in req. With neither, the vendor refuses
// with a business error naming the missing identifier.
func Cancel(ctx context.Context, c Caller, req types.CancelRequest) (*types.Result[types.Payment], error) {
	return cancel(ctx, c, types.OpCancel, req)
}

func cancel(ctx context.Context, c Caller, op types.Operation, req types.CancelRequest) (*types.Result[types.Payment], error) {
	p, err := paramsOf(op, req)
	if err != nil {
		return nil, err
	}
	return call[types.Payment](ctx, c, op, p)
}
