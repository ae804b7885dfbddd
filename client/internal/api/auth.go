package api

import (
	"context"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

// GetToken exchanges the REST API key and secret for an access token.
// Any vendor refusal is reported as an authentication error.
func GetToken(ctx context.Context, c Caller, req types.TokenRequest) (*types.Result[types.AccessToken], error) {
	p, err := paramsOf(types.OpGetToken, req)
	if err != nil {
		return nil, err
	}
	res, err := call[types.AccessToken](ctx, c, types.OpGetToken, p)
	if ie, ok := ierrors.As(err); ok && ie.Kind == ierrors.KindBusiness {
		ie.Kind = ierrors.KindAuthentication
	}
	if err != nil {
		return nil, err
	}
	if !res.Found() || res.Data.AccessToken == "" {
		return nil, ierrors.NewAuthenticationError(types.OpGetToken.Name, 0, 0, ierrors.MsgAuthenticationFailed)
	}
	return res, nil
}
