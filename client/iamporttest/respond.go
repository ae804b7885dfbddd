package iamporttest

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Vendor wording the fake uses beyond what the client package exports.
const (
	msgAlreadyCancelled = "이미 전액취소된 주문입니다."
	msgDuplicateOrder   = "이미 결제된 merchant_uid입니다."
	msgUnsupported      = "지원되지 않는 상태값입니다."
)

func writeEnvelope(w http.ResponseWriter, status, code int, message string, data any) {
	var msg any
	if message != "" {
		msg = message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"code": code, "message": msg, "response": data}); err != nil {
		log.Error().Err(err).Msg("iamporttest: failed to encode response")
	}
}

func writeOK(w http.ResponseWriter, data any) { writeEnvelope(w, http.StatusOK, 0, "", data) }

// readParams accepts both JSON and form bodies and flattens values to strings.
func readParams(r *http.Request) (map[string]string, error) {
	out := make(map[string]string)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for k := range r.PostForm {
			out[k] = r.PostForm.Get(k)
		}
		return out, nil
	}

	if r.Body == nil || r.ContentLength == 0 {
		return out, nil
	}
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		switch x := v.(type) {
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(x)
		case nil:
		default:
			b, _ := json.Marshal(x)
			out[k] = string(b)
		}
	}
	return out, nil
}

func amountOf(p map[string]string) float64 {
	f, _ := strconv.ParseFloat(p["amount"], 64)
	return f
}
