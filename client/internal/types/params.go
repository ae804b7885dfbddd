package types

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Params is the flat parameter object sent to the vendor, keyed by the vendor's
// snake_case field names.
type Params map[string]any

// ParamsOf flattens a request struct into Params. Zero-valued fields tagged
// omitempty disappear, which is what makes them "missing" for validation.
// Keys in extra never override typed fields.
func ParamsOf(v any, extra map[string]any) (Params, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	p := Params{}
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := p[k]; !ok {
			p[k] = val
		}
	}
	return p, nil
}

// Has reports whether key is present with a non-empty value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// String renders the value for key the way it travels in a path, query or form.
func (p Params) String(key string) string {
	return formatValue(p[key])
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Values converts p into url.Values with deterministic key order. Nested
// objects are sent as JSON strings.
func (p Params) Values() url.Values {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := url.Values{}
	for _, k := range keys {
		if !p.Has(k) {
			continue
		}
		vals.Set(k, p.String(k))
	}
	return vals
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return strconv.FormatInt(x.Unix(), 10)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
