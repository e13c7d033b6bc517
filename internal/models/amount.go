package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a whole-won money value decoded leniently from JSON.
// Numbers and numeric strings decode as valid; anything else (including a
// missing field or null) leaves Valid false.
type Amount struct {
	Value int64
	Valid bool
}

// Won returns a valid Amount.
func Won(v int64) Amount {
	return Amount{Value: v, Valid: true}
}

// OrZero returns the value, or 0 when the amount is invalid.
func (a Amount) OrZero() int64 {
	if !a.Valid {
		return 0
	}
	return a.Value
}

// MarshalJSON encodes a valid amount as a number and an invalid one as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}

// UnmarshalJSON never fails; undecodable input yields an invalid amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*a = Won(v)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	// 2^63 is exact as a float64; anything at or beyond it overflows int64.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	*a = Won(int64(f))
	return nil
}
