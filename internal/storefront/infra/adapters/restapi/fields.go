package restapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fields is one decoded JSON object. The backend is inconsistent about key
// casing and about quoting numbers, so every accessor takes a list of
// aliases and accepts both strings and numbers.
type fields map[string]json.RawMessage

func (f fields) raw(keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := f[k]; ok && !isNull(v) {
			return v
		}
	}
	return nil
}

func (f fields) str(keys ...string) string {
	return parseString(f.raw(keys...))
}

// dec returns ok == false when the value is missing or not a number.
func (f fields) dec(keys ...string) (decimal.Decimal, bool) {
	return parseDecimal(f.raw(keys...))
}

func (f fields) decOrZero(keys ...string) decimal.Decimal {
	d, _ := f.dec(keys...)
	return d
}

// maxQuantity bounds a single line item; anything larger is invalid.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// quantity parses a non-negative whole number; anything else is 0.
func (f fields) quantity(keys ...string) int {
	d, ok := f.dec(keys...)
	if !ok || d.IsNegative() || d.GreaterThan(maxQuantity) {
		return 0
	}
	return int(d.IntPart())
}

func (f fields) boolean(keys ...string) bool {
	raw := f.raw(keys...)
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	switch strings.ToLower(parseString(raw)) {
	case "true", "1", "yes", "read":
		return true
	}
	return false
}

// object returns the nested object under the first present key, or nil.
func (f fields) object(keys ...string) fields {
	raw := f.raw(keys...)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var nested fields
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	return nested
}

// list returns the nested array of objects under the first present key.
// Non-object elements are dropped.
func (f fields) list(keys ...string) []fields {
	raw := f.raw(keys...)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]fields, 0, len(elems))
	for _, e := range elems {
		var obj fields
		if err := json.Unmarshal(e, &obj); err == nil && obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

func (f fields) time(keys ...string) time.Time {
	return parseTime(parseString(f.raw(keys...)))
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseString renders strings as-is and numbers in their JSON form.
func parseString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	s := parseString(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns the zero time when s matches none of the known layouts.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// decodeObject parses a single-object payload.
func decodeObject(payload json.RawMessage) (fields, error) {
	if isNull(payload) {
		return nil, errEmptyPayload
	}
	var f fields
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// decodeList parses an array payload. null decodes to an empty list.
func decodeList(payload json.RawMessage) ([]fields, error) {
	if isNull(payload) {
		return []fields{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return nil, err
	}
	out := make([]fields, 0, len(elems))
	for _, e := range elems {
		var f fields
		if err := json.Unmarshal(e, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
