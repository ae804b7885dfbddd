package transport

import (
	"net/http"
	"testing"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

func TestMapResponse(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		op       types.Operation
		status   int
		body     string
		wantKind ierrors.Kind // 0 means success
		wantMsg  string
		wantData bool
		wantRec  bool
	}{
		{name: "success", op: types.OpFindByImpUID, status: 200, body: `{"code":0,"message":"","response":{"imp_uid":"a"}}`, wantData: true},
		{name: "success null data", op: types.OpFindByImpUID, status: 200, body: `{"code":0,"message":"none","response":null}`, wantMsg: "none"},
		{name: "business on 200", op: types.OpCancel, status: 200, body: `{"code":1,"message":"취소할 결제건이 존재하지 않습니다.","response":null}`, wantKind: ierrors.KindBusiness, wantMsg: ierrors.MsgNothingToCancel},
		{name: "unauthorized", op: types.OpFindByImpUID, status: 401, body: `{"code":-1,"message":"아임포트 API 인증에 실패하였습니다.","response":null}`, wantKind: ierrors.KindAuthentication, wantMsg: ierrors.MsgAuthenticationFailed},
		{name: "unauthorized no envelope", op: types.OpFindByImpUID, status: 401, body: `Unauthorized`, wantKind: ierrors.KindAuthentication, wantMsg: ierrors.MsgAuthenticationFailed},
		{name: "lookup 404", op: types.OpGetPreparedPayment, status: 404, body: `{"code":1,"message":"사전등록된 결제정보가 존재하지 않습니다.","response":null}`, wantMsg: ierrors.MsgPreparedNotFound},
		{name: "non-lookup 404", op: types.OpDeleteBillingKey, status: 404, body: `{"code":1,"message":"등록되지 않은 구매자입니다.","response":null}`, wantKind: ierrors.KindBusiness, wantMsg: ierrors.MsgUnknownCustomer},
		{name: "404 without envelope", op: types.OpFindByImpUID, status: 404, body: `404 page not found`, wantKind: ierrors.KindTransport, wantMsg: "find-by-imp-uid: HTTP 404"},
		{name: "400 envelope", op: types.OpPayOnetime, status: 400, body: `{"code":-1,"message":"bad","response":null}`, wantKind: ierrors.KindBusiness, wantMsg: "bad"},
		{name: "500 plain", op: types.OpFindByImpUID, status: 500, body: `oops`, wantKind: ierrors.KindTransport, wantMsg: "find-by-imp-uid: HTTP 500", wantRec: true},
		{name: "503 envelope keeps message", op: types.OpFindByImpUID, status: 503, body: `{"code":-1,"message":"점검중","response":null}`, wantKind: ierrors.KindTransport, wantMsg: "점검중", wantRec: true},
		{name: "429", op: types.OpFindByImpUID, status: 429, body: ``, wantKind: ierrors.KindTransport, wantMsg: "find-by-imp-uid: HTTP 429", wantRec: true},
		{name: "malformed 200", op: types.OpFindByImpUID, status: 200, body: `{"code":`, wantKind: ierrors.KindTransport},
		{name: "empty object 200", op: types.OpFindByImpUID, status: 200, body: `{}`, wantKind: ierrors.KindTransport},
		{name: "200 without code", op: types.OpCancel, status: 200, body: `{"message":"ok","response":{"imp_uid":"a"}}`, wantKind: ierrors.KindTransport},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env, err := MapResponse(tc.op, tc.status, []byte(tc.body))
			if tc.wantKind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if env.HasData() != tc.wantData {
					t.Fatalf("HasData=%v want %v", env.HasData(), tc.wantData)
				}
				if env.Message != tc.wantMsg {
					t.Fatalf("message %q want %q", env.Message, tc.wantMsg)
				}
				return
			}
			ie, ok := ierrors.As(err)
			if !ok {
				t.Fatalf("expected IamporterError, got %v", err)
			}
			if ie.Kind != tc.wantKind {
				t.Fatalf("kind %v want %v", ie.Kind, tc.wantKind)
			}
			if tc.wantMsg != "" && ie.Message != tc.wantMsg {
				t.Fatalf("message %q want %q", ie.Message, tc.wantMsg)
			}
			if ie.StatusCode != tc.status {
				t.Fatalf("status %d want %d", ie.StatusCode, tc.status)
			}
			if got := ie.Category == ierrors.Recoverable; got != tc.wantRec {
				t.Fatalf("recoverable=%v want %v", got, tc.wantRec)
			}
		})
	}
}

func TestMapResponse_ForbiddenIsAuthentication(t *testing.T) {
	t.Parallel()
	_, err := MapResponse(types.OpFindByImpUID, http.StatusForbidden, []byte(`{"code":-1,"message":"권한 없음"}`))
	if !ierrors.IsKind(err, ierrors.KindAuthentication) || err.Error() != "권한 없음" {
		t.Fatalf("unexpected %v", err)
	}
}
