package investlog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

var hundred = decimal.NewFromInt(100)

// Ratio returns num/den as a percentage, 0 when den is zero.
func Ratio(num, den Money) Percent {
	if den.IsZero() {
		return 0
	}
	r := decimal.NewFromInt(num.amount).Mul(hundred).DivRound(decimal.NewFromInt(den.amount), 8)
	return Percent(r.InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	return p.Within(q, 0.0001)
}

// Within reports whether p and q differ by less than tol percentage points.
func (p Percent) Within(q Percent, tol float64) bool {
	diff := float64(p - q)
	if diff < 0 {
		diff = -diff
	}
	return diff < tol
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
