package investlog

import (
	"errors"
	"fmt"
)

// percentTolerance is the accepted gap between a stored profit percentage and
// the computed one. Stored percentages are rounded literals (e.g. 16.67).
const percentTolerance = 0.01

// MaxAmount bounds principal and current values, in minor units, so that the
// sums of up to 9000 records fit in an int64.
const MaxAmount = 1_000_000_000_000_000

// DataIntegrityError reports a record that breaks an invariant of the data
// model. Record sources return it before records reach the engine.
type DataIntegrityError struct {
	RecordID int64
	Field    string
	Reason   string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("record #%d: invalid %s: %s", e.RecordID, e.Field, e.Reason)
}

func integrity(r Record, field, format string, args ...any) error {
	return &DataIntegrityError{RecordID: r.id, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks r for correctness. Every failure is reported, joined.
func (r Record) Validate() error {
	var errs []error
	if r.id <= 0 {
		errs = append(errs, integrity(r, "id", "must be positive, got %d", r.id))
	}
	if r.asset == "" {
		errs = append(errs, integrity(r, "asset", "is required"))
	}
	if !r.assetType.known() {
		errs = append(errs, integrity(r, "type", "unknown asset type %q", r.assetType))
	}
	if r.txType != Buy && r.txType != Sell {
		errs = append(errs, integrity(r, "tx", "unknown transaction type %q", r.txType))
	}
	if r.date.IsZero() {
		errs = append(errs, integrity(r, "date", "is required"))
	}
	if r.principal.IsNegative() {
		errs = append(errs, integrity(r, "principal", "must not be negative, got %v", r.principal))
	}
	if r.current.IsNegative() {
		errs = append(errs, integrity(r, "current", "must not be negative, got %v", r.current))
	}
	if r.principal.Minor() > MaxAmount {
		errs = append(errs, integrity(r, "principal", "exceeds %d minor units", int64(MaxAmount)))
	}
	if r.current.Minor() > MaxAmount {
		errs = append(errs, integrity(r, "current", "exceeds %d minor units", int64(MaxAmount)))
	}
	if r.principal.Currency() != r.current.Currency() {
		errs = append(errs, integrity(r, "currency", "principal in %q but current value in %q", r.principal.Currency(), r.current.Currency()))
	}
	return errors.Join(errs...)
}

// CheckDerived verifies stored derived values against the ones recomputed
// from r. Sources that persist profit figures call it when loading.
func (r Record) CheckDerived(profit Money, percent Percent) error {
	if !profit.Equal(r.Profit()) {
		return integrity(r, "profit", "stored %v but current value - principal is %v", profit, r.Profit())
	}
	if !percent.Within(r.ProfitPercent(), percentTolerance) {
		return integrity(r, "profitPercentage", "stored %v but computed %v", percent, r.ProfitPercent())
	}
	return nil
}
