// Package money provides the exact fixed-point representation used to store
// and recover currency amounts. Amounts live as signed integer minor units
// (cents, sen, ...) plus the decimal-place count and ISO code of their
// currency; arithmetic and comparison never go through floating point.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact currency amount. The zero value is 0 units of no currency.
type Money struct {
	units    int64 // signed minor-unit amount
	decimals int32
	code     string
}

// FromMinorUnits builds a Money from an integer minor-unit amount. This is the
// exact, preferred constructor: decomposition into whole and fractional parts
// is pure integer arithmetic.
func FromMinorUnits(units int64, decimals int32, code string) Money {
	return Money{units: units, decimals: decimals, code: code}
}

// FromFloat builds a Money from a floating major-unit amount. The conversion
// goes through a decimal shift and half-up rounding, so it is best-effort:
// floats with more significant digits than the mantissa holds lose precision.
// Ledger-critical amounts must come in as integer minor units instead.
func FromFloat(amount float64, decimals int32, code string) Money {
	units := decimal.NewFromFloat(amount).Shift(decimals).Round(0).IntPart()
	return Money{units: units, decimals: decimals, code: code}
}

// MinorUnits returns the raw integer amount, suitable for storage.
func (m Money) MinorUnits() int64 { return m.units }

// DecimalPlaces returns the currency's minor-unit exponent.
func (m Money) DecimalPlaces() int32 { return m.decimals }

// Code returns the ISO-4217 currency code. It is display/join metadata only;
// no conversion is ever performed on it.
func (m Money) Code() string { return m.code }

// Whole returns the integer major-unit part, carrying the sign.
func (m Money) Whole() int64 {
	return (m.units - int64(m.Fractional())) / pow10(m.decimals)
}

// Fractional returns the minor-unit remainder in [0, 10^decimals).
// Whole()*10^decimals + Fractional() always reproduces the raw amount.
func (m Money) Fractional() int64 {
	p := pow10(m.decimals)
	f := m.units % p
	if f < 0 {
		f += p
	}
	return f
}

// Decimal returns the amount as an exact decimal, for display recomposition.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -m.decimals)
}

// String formats the amount as a display numeral with its code, e.g.
// "1234.56 USD". The output is for humans; re-parsing it for arithmetic would
// reintroduce float error.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(m.decimals), m.code)
}

// Equal reports field-wise equality. Amounts in different currencies or with
// different decimal-place counts are never equal; there is no implicit
// cross-currency comparison.
func (m Money) Equal(n Money) bool {
	return m.units == n.units && m.decimals == n.decimals && m.code == n.code
}

func pow10(n int32) int64 {
	p := int64(1)
	for i := int32(0); i < n; i++ {
		p *= 10
	}
	return p
}
