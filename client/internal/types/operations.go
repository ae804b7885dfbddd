package types

import (
	"net/http"
	"net/url"
	"strings"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
)

// Encoding selects how an operation's parameters travel on the wire.
type Encoding int

const (
	// EncodingNone sends no body; non-path parameters become the query string.
	EncodingNone Encoding = iota
	EncodingJSON
	EncodingForm
)

// Operation is the static description of one vendor endpoint.
type Operation struct {
	Name     string
	Method   string
	Path     string   // template with {param} placeholders
	Required []string // checked in order before dispatch
	Encoding Encoding
	Auth     bool

	// NotFoundIsEmpty marks lookups where a vendor 404 is a successful
	// "nothing found" result instead of an error.
	NotFoundIsEmpty bool
}

// ------------------------------
// Operation table
// ------------------------------

var (
	OpGetToken = Operation{
		Name:     "get-token",
		Method:   http.MethodPost,
		Path:     "/users/getToken",
		Required: []string{"imp_key", "imp_secret"},
		Encoding: EncodingJSON,
	}

	OpFindByImpUID = Operation{
		Name:            "find-by-imp-uid",
		Method:          http.MethodGet,
		Path:            "/payments/{imp_uid}",
		Required:        []string{"imp_uid"},
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpFindByMerchantUID = Operation{
		Name:            "find-by-merchant-uid",
		Method:          http.MethodGet,
		Path:            "/payments/find/{merchant_uid}",
		Required:        []string{"merchant_uid"},
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpFindAllByMerchantUID = Operation{
		Name:            "find-all-by-merchant-uid",
		Method:          http.MethodGet,
		Path:            "/payments/findAll/{merchant_uid}/{payment_status}",
		Required:        []string{"merchant_uid", "payment_status"},
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpFindAllByStatus = Operation{
		Name:            "find-all-by-status",
		Method:          http.MethodGet,
		Path:            "/payments/status/{payment_status}",
		Required:        []string{"payment_status"},
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpCreatePreparedPayment = Operation{
		Name:     "create-prepared-payment",
		Method:   http.MethodPost,
		Path:     "/payments/prepare",
		Required: []string{"merchant_uid", "amount"},
		Encoding: EncodingJSON,
		Auth:     true,
	}

	OpGetPreparedPayment = Operation{
		Name:            "get-prepared-payment",
		Method:          http.MethodGet,
		Path:            "/payments/prepare", // merchant_uid travels in the query; the vendor rejects an empty one
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpPayOnetime = Operation{
		Name:     "pay-onetime",
		Method:   http.MethodPost,
		Path:     "/subscribe/payments/onetime",
		Required: []string{"merchant_uid", "amount", "card_number", "expiry", "birth"},
		Encoding: EncodingJSON,
		Auth:     true,
	}

	OpPaySubscription = Operation{
		Name:     "pay-subscription",
		Method:   http.MethodPost,
		Path:     "/subscribe/payments/again",
		Required: []string{"customer_uid", "merchant_uid", "amount"},
		Encoding: EncodingJSON,
		Auth:     true,
	}

	OpPayForeign = Operation{
		Name:     "pay-foreign",
		Method:   http.MethodPost,
		Path:     "/subscribe/payments/foreign",
		Required: []string{"merchant_uid", "amount", "card_number", "expiry"},
		Encoding: EncodingJSON,
		Auth:     true,
	}

	OpCancelByImpUID = Operation{
		Name:     "cancel-by-imp-uid",
		Method:   http.MethodPost,
		Path:     "/payments/cancel",
		Required: []string{"imp_uid"},
		Encoding: EncodingForm,
		Auth:     true,
	}

	OpCancelByMerchantUID = Operation{
		Name:     "cancel-by-merchant-uid",
		Method:   http.MethodPost,
		Path:     "/payments/cancel",
		Required: []string{"merchant_uid"},
		Encoding: EncodingForm,
		Auth:     true,
	}

	OpCancel = Operation{
		Name:     "cancel",
		Method:   http.MethodPost,
		Path:     "/payments/cancel", // the vendor rejects a request with neither identifier
		Encoding: EncodingForm,
		Auth:     true,
	}

	OpCreateBillingKey = Operation{
		Name:     "create-billing-key",
		Method:   http.MethodPost,
		Path:     "/subscribe/customers/{customer_uid}",
		Required: []string{"customer_uid", "card_number", "expiry", "birth"},
		Encoding: EncodingJSON,
		Auth:     true,
	}

	OpGetBillingKey = Operation{
		Name:            "get-billing-key",
		Method:          http.MethodGet,
		Path:            "/subscribe/customers/{customer_uid}",
		Required:        []string{"customer_uid"},
		Auth:            true,
		NotFoundIsEmpty: true,
	}

	OpDeleteBillingKey = Operation{
		Name:     "delete-billing-key",
		Method:   http.MethodDelete,
		Path:     "/subscribe/customers/{customer_uid}",
		Required: []string{"customer_uid"},
		Auth:     true,
	}
)

// Operations lists every descriptor, in declaration order.
var Operations = []Operation{
	OpGetToken,
	OpFindByImpUID,
	OpFindByMerchantUID,
	OpFindAllByMerchantUID,
	OpFindAllByStatus,
	OpCreatePreparedPayment,
	OpGetPreparedPayment,
	OpPayOnetime,
	OpPaySubscription,
	OpPayForeign,
	OpCancelByImpUID,
	OpCancelByMerchantUID,
	OpCancel,
	OpCreateBillingKey,
	OpGetBillingKey,
	OpDeleteBillingKey,
}

// Validate checks required fields against p without touching the network.
func (o Operation) Validate(p Params) error {
	var missing []string
	for _, f := range o.Required {
		if !p.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return ierrors.NewValidationError(o.Name, ierrors.MsgMissingParams+": "+strings.Join(missing, ", "), missing...)
	}
	return nil
}

// PathParams returns the placeholder names in Path, in order.
func (o Operation) PathParams() []string {
	var names []string
	rest := o.Path
	for {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			return names
		}
		j := strings.IndexByte(rest[i:], '}')
		if j < 0 {
			return names
		}
		names = append(names, rest[i+1:i+j])
		rest = rest[i+j+1:]
	}
}

// BuildPath substitutes path parameters from p, escaping each value. It returns
// the path and the parameters left over for the body or query string.
func (o Operation) BuildPath(p Params) (string, Params) {
	path := o.Path
	rest := p.Clone()
	for _, name := range o.PathParams() {
		path = strings.Replace(path, "{"+name+"}", url.PathEscape(p.String(name)), 1)
		if o.Encoding == EncodingNone {
			delete(rest, name)
		}
	}
	return path, rest
}
