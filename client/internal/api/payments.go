package api

import (
	"context"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// FindByImpUID looks a payment up by the vendor's id.
func FindByImpUID(ctx context.Context, c Caller, impUID string) (*types.Result[types.Payment], error) {
	return call[types.Payment](ctx, c, types.OpFindByImpUID, types.Params{"imp_uid": impUID})
}

// FindByMerchantUID looks up the latest payment for the merchant's order id.
func FindByMerchantUID(ctx context.Context, c Caller, merchantUID string) (*types.Result[types.Payment], error) {
	return call[types.Payment](ctx, c, types.OpFindByMerchantUID, types.Params{"merchant_uid": merchantUID})
}

// FindAllByMerchantUID lists every payment attempt for an order id. An empty
// status means all.
func FindAllByMerchantUID(ctx context.Context, c Caller, merchantUID string, status types.PaymentStatus, opts types.ListOptions) (*types.Result[types.PaymentList], error) {
	op := types.OpFindAllByMerchantUID
	st, err := types.ValidateStatus(op.Name, status)
	if err != nil {
		return nil, err
	}
	p := types.Params{"merchant_uid": merchantUID, "payment_status": string(st)}
	opts.Apply(p)
	return call[types.PaymentList](ctx, c, op, p)
}

// FindAllByStatus lists payments in a status, paged by opts.
func FindAllByStatus(ctx context.Context, c Caller, status types.PaymentStatus, opts types.ListOptions) (*types.Result[types.PaymentList], error) {
	op := types.OpFindAllByStatus
	st, err := types.ValidateStatus(op.Name, status)
	if err != nil {
		return nil, err
	}
	p := types.Params{"payment_status": string(st)}
	opts.Apply(p)
	return call[types.PaymentList](ctx, c, op, p)
}
