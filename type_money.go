package investlog

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the demonstrated locale.
const DefaultCurrency = "IDR"

// Money represents a monetary value as an integer number of the currency's
// minor unit, so that sums never drift.
type Money struct {
	amount int64 // in minor units
	cur    string
}

// FromMinor returns a Money from an amount expressed in minor units.
func FromMinor(amount int64, currency string) Money { return Money{amount: amount, cur: currency} }

// M returns a Money from an amount expressed in major units.
func M(major int64, currency string) Money {
	return Money{amount: major * pow10(fraction(currency)), cur: currency}
}

// IDR returns an amount of Rupiah.
func IDR(major int64) Money { return M(major, "IDR") }

var (
	minMinor = decimal.NewFromInt(math.MinInt64)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// MoneyFromDecimal converts an amount in major units. Amounts finer than the
// currency minor unit, or too large to count in int64 minor units, are
// rejected.
func MoneyFromDecimal(d decimal.Decimal, currency string) (Money, error) {
	shifted := d.Shift(int32(fraction(currency)))
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("amount %s has more digits than %s allows", d, currency)
	}
	if shifted.GreaterThan(maxMinor) || shifted.LessThan(minMinor) {
		return Money{}, fmt.Errorf("amount %s is out of range", d)
	}
	return Money{amount: shifted.IntPart(), cur: currency}, nil
}

// ParseMoney parses a decimal string in major units (e.g. "5000000" or "12.5").
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d, currency)
}

// fraction returns the number of minor unit digits of a currency.
func fraction(code string) int {
	if code == "" {
		return 0
	}
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, code).Currency().Fraction
}

func pow10(n int) int64 {
	p := int64(1)
	for range n {
		p *= 10
	}
	return p
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// Minor returns the amount in minor units.
func (m Money) Minor() int64 { return m.amount }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -int32(fraction(m.cur)))
}

// String returns the amount formatted for its currency, e.g. "Rp5.000.000,00".
func (m Money) String() string {
	if m.cur == "" {
		return m.Decimal().String()
	}
	return money.New(m.amount, m.cur).Display()
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	switch {
	case m.amount == 0:
		return "-"
	case m.amount > 0:
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Equal(n Money) bool { return m.amount == n.amount && m.cur == n.cur }
func (m Money) IsZero() bool       { return m.amount == 0 }
func (m Money) IsPositive() bool   { return m.amount > 0 }
func (m Money) IsNegative() bool   { return m.amount < 0 }
func (m Money) Neg() Money         { return Money{amount: -m.amount, cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{amount: m.amount + n.amount, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{amount: m.amount - n.amount, cur: cur(m, n)} }

// Compare returns -1, 0, +1 as m is less, equal or greater than n. ok is
// false when both currencies are set and differ.
func (m Money) Compare(n Money) (c int, ok bool) {
	if m.cur != "" && n.cur != "" && m.cur != n.cur {
		return 0, false
	}
	switch {
	case m.amount < n.amount:
		return -1, true
	case m.amount > n.amount:
		return 1, true
	}
	return 0, true
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.Decimal())
	return w.MarshalJSON()
}
