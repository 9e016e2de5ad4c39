package ezbookkeeping

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// MajorAmount is a decimal amount in major currency units (dollars).
// It marshals as a plain JSON number.
type MajorAmount struct {
	decimal.Decimal
}

// MajorFromMinor converts an integer count of minor units (cents) into major units
func MajorFromMinor(minor int64) MajorAmount {
	return MajorAmount{decimal.New(minor, -2)}
}

// MarshalJSON implements json.Marshaler for MajorAmount
func (m MajorAmount) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler for MajorAmount
func (m *MajorAmount) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Float64 returns the nearest float64 value
func (m MajorAmount) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// ToMinorUnits converts a major-unit amount into minor units.
//
// The float is first read as its shortest decimal representation, so 45.99
// becomes 4599 rather than the 4598 a plain int64(45.99*100) produces.
// Sub-cent digits are truncated toward zero: 19.999 and 19.995 both give 1999.
// NaN, infinities and amounts whose cent count does not fit in an int64
// are rejected with a ValidationError on "amount".
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &ValidationError{Field: "amount", Message: "must be a finite number", Value: amount}
	}

	minor := decimal.NewFromFloat(amount).Mul(hundred).Truncate(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, &ValidationError{Field: "amount", Message: "is out of range", Value: amount}
	}
	return minor.IntPart(), nil
}

// FormatAmount renders a minor-unit amount in major units, e.g. "$45.99" or "45.99 EUR"
func FormatAmount(minor int64, currency string) string {
	value := MajorFromMinor(minor).StringFixed(2)
	if currency == "" || currency == "USD" {
		return "$" + value
	}
	return fmt.Sprintf("%s %s", value, currency)
}
