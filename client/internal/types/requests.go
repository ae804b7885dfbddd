package types

import (
	"strconv"
	"time"
)

// ------------------------------
// Request Types
// ------------------------------
//
// Every request carries an Extra map for vendor fields the SDK does not model.
// Typed fields win over Extra on key collisions.

// TokenRequest holds the REST API credentials.
type TokenRequest struct {
	ImpKey    string `json:"imp_key,omitempty"`
	ImpSecret string `json:"imp_secret,omitempty"`
}

// Params flattens the request.
func (r TokenRequest) Params() (Params, error) { return ParamsOf(r, nil) }

// PreparePaymentRequest registers the amount expected for a merchant_uid.
type PreparePaymentRequest struct {
	MerchantUID string  `json:"merchant_uid,omitempty"`
	Amount      float64 `json:"amount,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r PreparePaymentRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// OnetimePaymentRequest charges a card without a stored billing key. When
// CustomerUID is set the vendor also stores the card under it.
type OnetimePaymentRequest struct {
	MerchantUID   string  `json:"merchant_uid,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	CardNumber    string  `json:"card_number,omitempty"`
	Expiry        string  `json:"expiry,omitempty"` // YYYY-MM
	Birth         string  `json:"birth,omitempty"`  // YYMMDD, or 10-digit business number
	Pwd2Digit     string  `json:"pwd_2digit,omitempty"`
	CustomerUID   string  `json:"customer_uid,omitempty"`
	Name          string  `json:"name,omitempty"`
	CardQuota     int     `json:"card_quota,omitempty"`
	TaxFree       float64 `json:"tax_free,omitempty"`
	BuyerName     string  `json:"buyer_name,omitempty"`
	BuyerEmail    string  `json:"buyer_email,omitempty"`
	BuyerTel      string  `json:"buyer_tel,omitempty"`
	BuyerAddr     string  `json:"buyer_addr,omitempty"`
	BuyerPostcode string  `json:"buyer_postcode,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r OnetimePaymentRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// SubscriptionPaymentRequest charges a stored billing key.
type SubscriptionPaymentRequest struct {
	CustomerUID string  `json:"customer_uid,omitempty"`
	MerchantUID string  `json:"merchant_uid,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Name        string  `json:"name,omitempty"`
	CardQuota   int     `json:"card_quota,omitempty"`
	TaxFree     float64 `json:"tax_free,omitempty"`
	BuyerName   string  `json:"buyer_name,omitempty"`
	BuyerEmail  string  `json:"buyer_email,omitempty"`
	BuyerTel    string  `json:"buyer_tel,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r SubscriptionPaymentRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// ForeignPaymentRequest charges a card issued outside Korea.
type ForeignPaymentRequest struct {
	MerchantUID string  `json:"merchant_uid,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	CardNumber  string  `json:"card_number,omitempty"`
	Expiry      string  `json:"expiry,omitempty"`
	CVC         string  `json:"cvc,omitempty"`
	Name        string  `json:"name,omitempty"`
	BuyerName   string  `json:"buyer_name,omitempty"`
	BuyerEmail  string  `json:"buyer_email,omitempty"`
	BuyerTel    string  `json:"buyer_tel,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r ForeignPaymentRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// CancelRequest cancels a payment fully, or partially when Amount is set.
type CancelRequest struct {
	ImpUID        string  `json:"imp_uid,omitempty"`
	MerchantUID   string  `json:"merchant_uid,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	TaxFree       float64 `json:"tax_free,omitempty"`
	Checksum      float64 `json:"checksum,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	RefundHolder  string  `json:"refund_holder,omitempty"`
	RefundBank    string  `json:"refund_bank,omitempty"`
	RefundAccount string  `json:"refund_account,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r CancelRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// BillingKeyRequest registers a card under a customer_uid.
type BillingKeyRequest struct {
	CardNumber       string `json:"card_number,omitempty"`
	Expiry           string `json:"expiry,omitempty"`
	Birth            string `json:"birth,omitempty"`
	Pwd2Digit        string `json:"pwd_2digit,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	CustomerTel      string `json:"customer_tel,omitempty"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	CustomerAddr     string `json:"customer_addr,omitempty"`
	CustomerPostcode string `json:"customer_postcode,omitempty"`

	Extra map[string]any `json:"-"`
}

// Params flattens the request.
func (r BillingKeyRequest) Params() (Params, error) { return ParamsOf(r, r.Extra) }

// ListOptions narrows a status listing. Zero fields are not sent.
type ListOptions struct {
	Page    int
	Limit   int
	From    time.Time
	To      time.Time
	Sorting string // e.g. "-started", "started", "-paid", "updated"
}

// Apply copies the options into p as query parameters.
func (o ListOptions) Apply(p Params) {
	if o.Page > 0 {
		p["page"] = strconv.Itoa(o.Page)
	}
	if o.Limit > 0 {
		p["limit"] = strconv.Itoa(o.Limit)
	}
	if !o.From.IsZero() {
		p["from"] = strconv.FormatInt(o.From.Unix(), 10)
	}
	if !o.To.IsZero() {
		p["to"] = strconv.FormatInt(o.To.Unix(), 10)
	}
	if o.Sorting != "" {
		p["sorting"] = o.Sorting
	}
}
