package totals

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a decimal that decodes leniently from JSON: numbers, numeric
// strings, empty strings, null and garbage are all accepted, the latter three
// as zero. It encodes as a bare JSON number.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// MustNumber parses s and panics on failure. Intended for constants and tests.
func MustNumber(s string) Number {
	return Number{Decimal: decimal.RequireFromString(s)}
}

// UnmarshalJSON coerces any malformed value to zero instead of failing.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.TrimSpace(strings.Trim(raw, `"`))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = d
	return nil
}

// MarshalJSON writes the value unquoted.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}
