package investlog

import (
	"fmt"
	"iter"
	"time"
)

// Range represents an inclusive range of dates.
//
// A zero From or To leaves that side of the range open. A Range whose From is
// after its To is empty: it contains no date at all.
type Range struct{ From, To Date }

// NewRange creates a new date range. Unlike a period, bounds are kept as
// given, so an inverted range is empty.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// IsZero returns true when both bounds are open.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// IsEmpty returns true when both bounds are set and inverted.
func (r Range) IsEmpty() bool { return !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if r.IsEmpty() {
		return false
	}
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Periods returns an iterator that yields each sequential range of a given
// period 'p' that contains at least one day within the original range 'r'.
// Both bounds must be set.
func (r Range) Periods(p Period) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		if r.From.IsZero() || r.To.IsZero() {
			return
		}
		for current := r.From; !current.After(r.To); {
			periodRange := p.Range(current)
			if !yield(periodRange) {
				return
			}
			current = periodRange.To.Add(1)
		}
	}
}

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From.IsZero() || r.To.IsZero():
		return Daily, false
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}

	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}

// AmountRange is an inclusive range of principal amounts, each bound is
// optional. Like Range, an inverted AmountRange is empty.
type AmountRange struct {
	Min, Max       Money
	HasMin, HasMax bool
}

// AtLeast returns a range with only a lower bound.
func AtLeast(min Money) AmountRange { return AmountRange{Min: min, HasMin: true} }

// AtMost returns a range with only an upper bound.
func AtMost(max Money) AmountRange { return AmountRange{Max: max, HasMax: true} }

// Between returns a range bounded on both sides.
func Between(min, max Money) AmountRange {
	return AmountRange{Min: min, Max: max, HasMin: true, HasMax: true}
}

// IsZero returns true when both bounds are unset.
func (a AmountRange) IsZero() bool { return !a.HasMin && !a.HasMax }

// Contains returns true if m lies within the bounds. An amount in a different
// currency than a bound is never contained.
func (a AmountRange) Contains(m Money) bool {
	if a.HasMin {
		c, ok := m.Compare(a.Min)
		if !ok || c < 0 {
			return false
		}
	}
	if a.HasMax {
		c, ok := m.Compare(a.Max)
		if !ok || c > 0 {
			return false
		}
	}
	return true
}
