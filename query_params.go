package investlog

import (
	"errors"
	"fmt"
	"strings"
)

// QueryParams is a query as typed by a user, in command line flags or URL
// parameters. Empty fields are unset.
type QueryParams struct {
	Term      string
	AssetType string
	Type      string
	Sector    string
	Preset    string // date range relative to now, From and To override its bounds
	From      string
	To        string
	Min       string // principal lower bound, in major units
	Max       string
	SortBy    string
	Order     string
}

// Query parses p. Relative dates and the preset are evaluated at now, amounts
// are read in currency. Every malformed parameter is reported.
func (p QueryParams) Query(now Date, currency string) (Query, error) {
	var errs []error
	check := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	q := NewQuery().WithTerm(strings.TrimSpace(p.Term))

	assetType, err := ParseAssetType(p.AssetType)
	check("type", err)
	q = q.WithAssetType(assetType)

	txType, err := ParseTransactionType(p.Type)
	check("tx", err)
	q = q.WithType(txType)

	if s := strings.TrimSpace(p.Sector); s != "" {
		q = q.WithSector(Sector(strings.ToLower(s)))
	}

	preset, err := ParsePreset(p.Preset)
	check("preset", err)
	dates := preset.Range(now)
	if s := strings.TrimSpace(p.From); s != "" {
		dates.From, err = ParseDateFrom(s, now)
		check("from", err)
	}
	if s := strings.TrimSpace(p.To); s != "" {
		dates.To, err = ParseDateFrom(s, now)
		check("to", err)
	}
	q = q.WithDates(dates)

	var amount AmountRange
	if s := strings.TrimSpace(p.Min); s != "" {
		amount.Min, err = ParseMoney(s, currency)
		amount.HasMin = err == nil
		check("min", err)
	}
	if s := strings.TrimSpace(p.Max); s != "" {
		amount.Max, err = ParseMoney(s, currency)
		amount.HasMax = err == nil
		check("max", err)
	}
	q = q.WithAmount(amount)

	key, err := ParseSortKey(p.SortBy)
	check("sort", err)
	order, err := ParseSortOrder(p.Order)
	check("order", err)
	q = q.WithSort(key, order)

	if err := errors.Join(errs...); err != nil {
		return q, err
	}
	return q, nil
}
