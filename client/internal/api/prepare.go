package api

import (
	"context"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// CreatePreparedPayment registers the amount the vendor must see for merchant_uid.
func CreatePreparedPayment(ctx context.Context, c Caller, req types.PreparePaymentRequest) (*types.Result[types.PreparedPayment], error) {
	p, err := paramsOf(types.OpCreatePreparedPayment, req)
	if err != nil {
		return nil, err
	}
	return call[types.PreparedPayment](ctx, c, types.OpCreatePreparedPayment, p)
}

// GetPreparedPayment reads a registration back. An empty merchantUID is sent
// as-is so the vendor answers, after checking the token.
func GetPreparedPayment(ctx context.Context, c Caller, merchantUID string) (*types.Result[types.PreparedPayment], error) {
	p := types.Params{}
	if merchantUID != "" {
		p["merchant_uid"] = merchantUID
	}
	return call[types.PreparedPayment](ctx, c, types.OpGetPreparedPayment, p)
}
