package investlog

import (
	"errors"
	"fmt"
	"strings"
)

// Form is the raw input of the transaction entry form. Fields are kept as
// typed by the user and parsed by [Form.Record].
type Form struct {
	Asset     string `json:"asset"`
	AssetType string `json:"type"`
	Amount    string `json:"amount"`
	Current   string `json:"current"` // defaults to Amount
	Tx        string `json:"tx"`      // defaults to buy
	Date      string `json:"date"`
	Sector    string `json:"sector"`
	Notes     string `json:"notes"`
}

// FormError lists the fields of a Form that are missing or invalid.
type FormError struct {
	Missing []string          // required fields left blank
	Invalid map[string]string // field -> reason
}

func (e *FormError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, field := range []string{"type", "amount", "current", "tx", "date"} {
		if reason, ok := e.Invalid[field]; ok {
			parts = append(parts, fmt.Sprintf("invalid %s: %s", field, reason))
		}
	}
	return strings.Join(parts, "; ")
}

func (e *FormError) invalid(field string, err error) {
	if e.Invalid == nil {
		e.Invalid = make(map[string]string)
	}
	e.Invalid[field] = err.Error()
}

func (e *FormError) empty() bool { return len(e.Missing) == 0 && len(e.Invalid) == 0 }

// Validate checks that the asset name, the amount and the date are filled,
// and that every filled field parses. It returns a *FormError or nil.
func (f Form) Validate(currency string) error {
	_, err := f.parse(currency)
	return err
}

// Record builds the record typed in f, with id and in currency.
func (f Form) Record(id int64, currency string) (Record, error) {
	r, err := f.parse(currency)
	if err != nil {
		return Record{}, err
	}
	return r.WithID(id), nil
}

// parse returns the record with a zero id.
func (f Form) parse(currency string) (Record, error) {
	fe := &FormError{}
	for _, req := range []struct{ name, value string }{
		{"asset", f.Asset},
		{"amount", f.Amount},
		{"date", f.Date},
	} {
		if strings.TrimSpace(req.value) == "" {
			fe.Missing = append(fe.Missing, req.name)
		}
	}

	assetType := OtherAsset
	if strings.TrimSpace(f.AssetType) != "" {
		t, err := ParseAssetType(f.AssetType)
		if err == nil && t == AnyAsset {
			err = errors.New("a single asset type is required")
		}
		if err != nil {
			fe.invalid("type", err)
		}
		assetType = t
	}
	tx, err := ParseTransactionType(f.Tx)
	if err != nil {
		fe.invalid("tx", err)
	}
	if tx == AnyType {
		tx = Buy
	}

	var principal, current Money
	if strings.TrimSpace(f.Amount) != "" {
		if principal, err = ParseMoney(strings.TrimSpace(f.Amount), currency); err != nil {
			fe.invalid("amount", err)
		} else if principal.IsNegative() {
			fe.invalid("amount", errors.New("must not be negative"))
		} else if principal.Minor() > MaxAmount {
			fe.invalid("amount", errors.New("too large"))
		}
	}
	current = principal
	if strings.TrimSpace(f.Current) != "" {
		if current, err = ParseMoney(strings.TrimSpace(f.Current), currency); err != nil {
			fe.invalid("current", err)
		} else if current.IsNegative() {
			fe.invalid("current", errors.New("must not be negative"))
		} else if current.Minor() > MaxAmount {
			fe.invalid("current", errors.New("too large"))
		}
	}

	var on Date
	if strings.TrimSpace(f.Date) != "" {
		if on, err = ParseDate(strings.TrimSpace(f.Date)); err != nil {
			fe.invalid("date", err)
		}
	}

	if !fe.empty() {
		return Record{}, fe
	}
	r := NewRecord(0, strings.TrimSpace(f.Asset), assetType, tx, on, principal, current).
		WithSector(Sector(strings.TrimSpace(f.Sector))).
		WithNotes(strings.TrimSpace(f.Notes))
	return r, nil
}
