// Package money provides the unsigned 128-bit minor-unit currency amount used
// throughout the ledger. Amounts are a single denomination with no fractional
// part; arithmetic that would underflow is rejected by callers via Cmp before
// subtracting.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// Amount is an unsigned 128-bit integer number of minor currency units.
// The zero value is a valid zero amount.
type Amount struct {
	v uint128.Uint128
}

// Zero is the zero amount.
var Zero = Amount{}

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// FromUint64 returns the amount equal to v.
func FromUint64(v uint64) Amount {
	return Amount{uint128.From64(v)}
}

// Parse converts a base-10 string into an Amount. It rejects empty strings,
// signs, non-digits, and values that do not fit in 128 bits.
func Parse(s string) (Amount, error) {
	if s == "" {
		return Zero, errors.New("empty amount")
	}
	if s[0] == '-' {
		return Zero, fmt.Errorf("negative amount %q", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Zero, fmt.Errorf("malformed amount %q", s)
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, fmt.Errorf("malformed amount %q", s)
	}
	if n.Cmp(maxUint128) > 0 {
		return Zero, fmt.Errorf("amount %q overflows 128 bits", s)
	}
	return Amount{uint128.FromBig(n)}, nil
}

// Add returns a+b.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.v.Add(b.v)}
}

// Sub returns a-b. Callers must ensure b <= a.
func (a Amount) Sub(b Amount) Amount {
	return Amount{a.v.Sub(b.v)}
}

// DivUint64 returns the truncated quotient a/n. n == 0 yields zero rather
// than panicking; the split fan-out relies on this.
func (a Amount) DivUint64(n uint64) Amount {
	if n == 0 {
		return Zero
	}
	return Amount{a.v.Div64(n)}
}

// Cmp returns -1, 0, or 1 depending on whether a is less than, equal to, or
// greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(b.v)
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// String renders a as a base-10 string.
func (a Amount) String() string {
	return a.v.String()
}

// MarshalJSON encodes the amount as a JSON string, preserving full precision.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("amount must be a JSON string, got %s", data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer; amounts are stored as TEXT.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case []byte:
		return a.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into money.Amount", src)
	}
}
