package api

import (
	"context"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// CreateBillingKey stores a card under customerUID for later PaySubscription calls.
func CreateBillingKey(ctx context.Context, c Caller, customerUID string, req types.BillingKeyRequest) (*types.Result[types.BillingKey], error) {
	p, err := paramsOf(types.OpCreateBillingKey, req)
	if err != nil {
		return nil, err
	}
	if customerUID != "" {
		p["customer_uid"] = customerUID
	}
	return call[types.BillingKey](ctx, c, types.OpCreateBillingKey, p)
}

func GetBillingKey(ctx context.Context, c Caller, customerUID string) (*types.Result[types.BillingKey], error) {
	return call[types.BillingKey](ctx, c, types.OpGetBillingKey, types.Params{"customer_uid": customerUID})
}

// DeleteBillingKey removes the stored card and returns what was deleted.
func DeleteBillingKey(ctx context.Context, c Caller, customerUID string) (*types.Result[types.BillingKey], error) {
	return call[types.BillingKey](ctx, c, types.OpDeleteBillingKey, types.Params{"customer_uid": customerUID})
}
