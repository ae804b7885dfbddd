package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// AccessToken is the payload of the token endpoint. Times are unix seconds on
// the vendor's clock.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	Now         int64  `json:"now"`
	ExpiredAt   int64  `json:"expired_at"`
}

// Payment is a single payment transaction.
type Payment struct {
	ImpUID        string          `json:"imp_uid"`
	MerchantUID   string          `json:"merchant_uid"`
	PayMethod     string          `json:"pay_method,omitempty"`
	Channel       string          `json:"channel,omitempty"`
	PGProvider    string          `json:"pg_provider,omitempty"`
	PGTID         string          `json:"pg_tid,omitempty"`
	Escrow        bool            `json:"escrow,omitempty"`
	ApplyNum      string          `json:"apply_num,omitempty"`
	CardName      string          `json:"card_name,omitempty"`
	CardNumber    string          `json:"card_number,omitempty"`
	CardQuota     int             `json:"card_quota,omitempty"`
	Name          string          `json:"name,omitempty"`
	Amount        float64         `json:"amount"`
	CancelAmount  float64         `json:"cancel_amount"`
	Currency      string          `json:"currency,omitempty"`
	BuyerName     string          `json:"buyer_name,omitempty"`
	BuyerEmail    string          `json:"buyer_email,omitempty"`
	BuyerTel      string          `json:"buyer_tel,omitempty"`
	CustomerUID   string          `json:"customer_uid,omitempty"`
	Status        PaymentStatus   `json:"status"`
	StartedAt     int64           `json:"started_at,omitempty"`
	PaidAt        int64           `json:"paid_at,omitempty"`
	FailedAt      int64           `json:"failed_at,omitempty"`
	CancelledAt   int64           `json:"cancelled_at,omitempty"`
	FailReason    string          `json:"fail_reason,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	CancelHistory []CancelHistory `json:"cancel_history,omitempty"`
}

// PaidTime converts PaidAt; zero when the payment was never paid.
func (p Payment) PaidTime() time.Time { return unixTime(p.PaidAt) }

// CancelledTime converts CancelledAt; zero when not cancelled.
func (p Payment) CancelledTime() time.Time { return unixTime(p.CancelledAt) }

// CancelHistory is one (partial) cancellation applied to a payment.
type CancelHistory struct {
	PGTID       string  `json:"pg_tid"`
	Amount      float64 `json:"amount"`
	CancelledAt int64   `json:"cancelled_at"`
	Reason      string  `json:"reason"`
	ReceiptURL  string  `json:"receipt_url,omitempty"`
}

// PaymentList is a page of payments.
type PaymentList struct {
	Total    int       `json:"total"`
	Previous int       `json:"previous"`
	Next     int       `json:"next"`
	List     []Payment `json:"list"`
}

// PreparedPayment is a pre-registered merchant_uid/amount pair.
type PreparedPayment struct {
	MerchantUID string  `json:"merchant_uid"`
	Amount      float64 `json:"amount"`
}

// BillingKey is a card credential stored by the vendor under a customer_uid.
type BillingKey struct {
	CustomerUID      string `json:"customer_uid"`
	PGProvider       string `json:"pg_provider,omitempty"`
	PGID             string `json:"pg_id,omitempty"`
	CardName         string `json:"card_name,omitempty"`
	CardCode         string `json:"card_code,omitempty"`
	CardNumber       string `json:"card_number,omitempty"`
	CardType         int    `json:"card_type,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	CustomerTel      string `json:"customer_tel,omitempty"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	CustomerAddr     string `json:"customer_addr,omitempty"`
	CustomerPostcode string `json:"customer_postcode,omitempty"`
	Inserted         int64  `json:"inserted,omitempty"`
	Updated          int64  `json:"updated,omitempty"`
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
