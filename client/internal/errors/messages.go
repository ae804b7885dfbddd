package errors

// Messages raised locally by the SDK. They follow the vendor's wording so a UI
// can display local and remote failures the same way.
const (
	MsgMissingParams      = "파라미터 누락"
	MsgUnsupportedStatus  = "지원되지 않는 상태값입니다."
	MsgIdentifierRequired = "imp_uid 혹은 merchant_uid 중 하나를 지정해주셔야합니다."
)

// Fixed vendor messages the SDK and its fake server know about.
const (
	MsgAuthenticationFailed = "아임포트 API 인증에 실패하였습니다."
	MsgPaymentNotFound      = "존재하지 않는 결제정보입니다."
	MsgPreparedNotFound     = "사전등록된 결제정보가 존재하지 않습니다."
	MsgNothingToCancel      = "취소할 결제건이 존재하지 않습니다."
	MsgUnknownCustomer      = "등록되지 않은 구매자입니다."
	MsgInvalidCardNumber    = "유효하지않은 카드번호를 입력하셨습니다."
)
