package types

import "encoding/json"

// ------------------------------
// Response Types
// ------------------------------

// Envelope is the wrapper every vendor response uses. Code 0 means success.
type Envelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

// HasData reports whether the envelope carries a non-null payload.
func (e Envelope) HasData() bool {
	return len(e.Response) > 0 && string(e.Response) != "null"
}

// Result is the unwrapped outcome of an operation. A nil Data on a lookup
// means the vendor found nothing; it is not an error.
type Result[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// Found reports whether the vendor returned a payload.
func (r *Result[T]) Found() bool { return r != nil && r.Data != nil }

// Decode builds a Result from an envelope.
func Decode[T any](env Envelope) (*Result[T], error) {
	res := &Result[T]{Message: env.Message}
	if !env.HasData() {
		return res, nil
	}
	var data T
	if err := json.Unmarshal(env.Response, &data); err != nil {
		return nil, err
	}
	res.Data = &data
	return res, nil
}
