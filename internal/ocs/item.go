package ocs

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teltrip/ocsreport/internal/types"
)

// Item is one element of a resolved OCS response. Tenants disagree on field
// names, so every getter takes an ordered list of candidate keys and returns
// the first value that is present and convertible.
type Item map[string]any

// String returns the first candidate key holding a non-empty string-like value.
func (it Item) String(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := it[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s, true
			}
		case json.Number:
			return s.String(), true
		case bool:
			return strconv.FormatBool(s), true
		}
	}
	return "", false
}

// Int64 returns the first candidate key convertible to an integer.
func (it Item) Int64(keys ...string) (int64, bool) {
	for _, k := range keys {
		v, ok := it[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, true
			}
			// integral floats like 1.23e+07
			if f, err := n.Float64(); err == nil {
				return int64(f), true
			}
		case string:
			if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
				return i, true
			}
		case int:
			return int64(n), true
		case int64:
			return n, true
		case float64:
			return int64(n), true
		}
	}
	return 0, false
}

// Decimal returns the first candidate key convertible to a decimal amount.
func (it Item) Decimal(keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		v, ok := it[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case json.Number:
			if d, err := decimal.NewFromString(n.String()); err == nil {
				return d, true
			}
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
				return d, true
			}
		case int:
			return decimal.NewFromInt(int64(n)), true
		case int64:
			return decimal.NewFromInt(n), true
		case float64:
			return decimal.NewFromFloat(n), true
		}
	}
	return decimal.Decimal{}, false
}

// Bool returns the first candidate key convertible to a boolean.
func (it Item) Bool(keys ...string) (bool, bool) {
	for _, k := range keys {
		v, ok := it[k]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.ToLower(b)); err == nil {
				return parsed, true
			}
		case json.Number:
			if i, err := b.Int64(); err == nil {
				return i != 0, true
			}
		}
	}
	return false, false
}

// Time returns the first candidate key parseable as a timestamp in any of
// the formats tenants have been observed to emit.
func (it Item) Time(keys ...string) (time.Time, bool) {
	s, ok := it.String(keys...)
	if !ok {
		return time.Time{}, false
	}
	return types.ParseTimeLoose(s)
}

// Child returns a nested object under the first matching key.
func (it Item) Child(keys ...string) (Item, bool) {
	for _, k := range keys {
		if m, ok := it[k].(map[string]any); ok {
			return Item(m), true
		}
	}
	return nil, false
}

// Items returns a nested list of objects under the first matching key.
// Non-object elements are skipped.
func (it Item) Items(keys ...string) []Item {
	for _, k := range keys {
		switch arr := it[k].(type) {
		case []any:
			out := make([]Item, 0, len(arr))
			for _, el := range arr {
				if m, ok := el.(map[string]any); ok {
					out = append(out, Item(m))
				}
			}
			return out
		case []map[string]any:
			out := make([]Item, 0, len(arr))
			for _, m := range arr {
				out = append(out, Item(m))
			}
			return out
		}
	}
	return nil
}
