package award

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// MileageCost is the miles price of a cabin on a given date.
//
// Decoded upstream values keep their raw JSON scalar until Normalize is
// called; the feed mixes numbers, numeric strings and placeholders such as
// "" or "N/A". A normalized cost is either a positive amount or absent.
type MileageCost struct {
	amount decimal.Decimal
	valid  bool
	raw    json.RawMessage
}

// NewMileageCost returns a normalized cost. Non-positive amounts are absent.
func NewMileageCost(miles int64) MileageCost {
	return fromDecimal(decimal.NewFromInt(miles))
}

// ParseMileageCost coerces a loosely typed scalar into a normalized cost.
// Anything that is not a positive finite number is absent.
//
// Values are read as float64, so a string such as "1e400" is out of range
// and absent, the same as the bare JSON number 1e400.
func ParseMileageCost(v any) MileageCost {
	s, err := cast.ToStringE(v)
	if err != nil {
		return MileageCost{}
	}
	s = strings.TrimSpace(s)
	// hex floats are not costs
	if strings.ContainsAny(s, "xX") {
		return MileageCost{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return MileageCost{}
	}
	return fromDecimal(decimal.NewFromFloat(f))
}

func fromDecimal(amount decimal.Decimal) MileageCost {
	if !amount.IsPositive() {
		return MileageCost{}
	}
	return MileageCost{amount: amount, valid: true}
}

// Normalize resolves a raw upstream value into a positive amount or absent.
// Normalizing a normalized cost returns it unchanged.
func (c MileageCost) Normalize() MileageCost {
	if c.valid {
		return fromDecimal(c.amount)
	}
	if len(c.raw) == 0 {
		return MileageCost{}
	}
	var v any
	if err := json.Unmarshal(c.raw, &v); err != nil {
		return MileageCost{}
	}
	return ParseMileageCost(v)
}

// Valid reports whether the cost holds a positive amount.
func (c MileageCost) Valid() bool {
	return c.valid
}

// Decimal returns the amount, zero when absent.
func (c MileageCost) Decimal() decimal.Decimal {
	return c.amount
}

// Int64 returns the amount truncated to whole miles, zero when absent.
func (c MileageCost) Int64() int64 {
	return c.amount.IntPart()
}

// Raw returns the undecoded upstream value, if any.
func (c MileageCost) Raw() json.RawMessage {
	return c.raw
}

// String renders the amount, or "" when absent.
func (c MileageCost) String() string {
	if !c.valid {
		return ""
	}
	return c.amount.String()
}

// Equal compares two normalized costs.
func (c MileageCost) Equal(o MileageCost) bool {
	if c.valid != o.valid {
		return false
	}
	if !c.valid {
		return bytes.Equal(c.raw, o.raw)
	}
	return c.amount.Equal(o.amount)
}

// IsZero reports an absent cost with no pending raw value; used by omitzero.
func (c MileageCost) IsZero() bool {
	return !c.valid && len(c.raw) == 0
}

// MarshalJSON writes the amount as a bare JSON number. A cost that was never
// normalized is written back as its raw upstream value.
func (c MileageCost) MarshalJSON() ([]byte, error) {
	if c.valid {
		return []byte(c.amount.String()), nil
	}
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON keeps the raw scalar for Normalize.
func (c *MileageCost) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = MileageCost{}
		return nil
	}
	*c = MileageCost{raw: append(json.RawMessage(nil), trimmed...)}
	return nil
}
