package investlog

import (
	"cmp"
	"fmt"
	"strings"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
	SortByProfit SortKey = "profit"
	SortByName   SortKey = "name"
)

// ParseSortKey parses a sort key, "" is the date.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByDate, nil
	case SortByDate, SortByAmount, SortByProfit, SortByName:
		return k, nil
	default:
		return SortByDate, fmt.Errorf("unknown sort key %q, want one of date, amount, profit, name", s)
	}
}

// SortOrder is the sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder parses "asc" or "desc", "" is descending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return Descending, nil
	case Ascending, Descending:
		return o, nil
	default:
		return Descending, fmt.Errorf("unknown sort order %q, want asc or desc", s)
	}
}

// Query describes a search over records. All filters are optional: a zero
// value, or the Any sentinel for categorical filters, matches everything.
//
// A Query is a value: the With* methods return an edited copy and never
// modify the receiver.
type Query struct {
	Term      string // case-insensitive substring of the asset name or the notes
	AssetType AssetType
	Type      TransactionType
	Sector    Sector
	Dates     Range
	Amount    AmountRange // bounds on the principal
	SortBy    SortKey
	Order     SortOrder
}

// NewQuery returns the default query: no filter, most recent first.
func NewQuery() Query { return Query{SortBy: SortByDate, Order: Descending} }

func (q Query) WithTerm(term string) Query                  { q.Term = term; return q }
func (q Query) WithAssetType(t AssetType) Query             { q.AssetType = t; return q }
func (q Query) WithType(t TransactionType) Query            { q.Type = t; return q }
func (q Query) WithSector(s Sector) Query                   { q.Sector = s; return q }
func (q Query) WithDates(r Range) Query                     { q.Dates = r; return q }
func (q Query) WithAmount(a AmountRange) Query              { q.Amount = a; return q }
func (q Query) WithSort(key SortKey, order SortOrder) Query { q.SortBy, q.Order = key, order; return q }

// WithPreset sets the date range from a preset evaluated at now.
func (q Query) WithPreset(p Preset, now Date) Query { return q.WithDates(p.Range(now)) }

// Clear removes every filter but keeps the sort.
func (q Query) Clear() Query {
	return Query{SortBy: q.SortBy, Order: q.Order}
}

func isAny[T ~string](v T) bool { return v == "" || v == Any }

// ActiveFilters counts the filters in use. Each date and amount bound counts
// for one.
func (q Query) ActiveFilters() int {
	n := 0
	for _, active := range []bool{
		q.Term != "",
		!isAny(q.AssetType),
		!isAny(q.Type),
		!isAny(q.Sector),
		!q.Dates.From.IsZero(),
		!q.Dates.To.IsZero(),
		q.Amount.HasMin,
		q.Amount.HasMax,
	} {
		if active {
			n++
		}
	}
	return n
}

// Match reports whether r satisfies every active filter of q.
func (q Query) Match(r Record) bool {
	if q.Term != "" && !r.containsText(strings.ToLower(q.Term)) {
		return false
	}
	if !isAny(q.AssetType) && r.assetType != q.AssetType {
		return false
	}
	if !isAny(q.Type) && r.txType != q.Type {
		return false
	}
	if !isAny(q.Sector) && r.sector != q.Sector {
		return false
	}
	if !q.Dates.Contains(r.date) {
		return false
	}
	return q.Amount.Contains(r.principal)
}

func (q Query) sortKey() SortKey {
	switch q.SortBy {
	case SortByAmount, SortByProfit, SortByName:
		return q.SortBy
	default:
		return SortByDate
	}
}

// Compare orders a and b by the query sort key and direction. Ties, in
// either direction, are broken by ascending id.
func (q Query) Compare(a, b Record) int {
	var c int
	switch q.sortKey() {
	case SortByAmount:
		c, _ = a.principal.Compare(b.principal)
	case SortByProfit:
		c, _ = a.Profit().Compare(b.Profit())
	case SortByName:
		c = strings.Compare(strings.ToLower(a.asset), strings.ToLower(b.asset))
	default:
		c = a.date.Compare(b.date)
	}
	if q.Order != Ascending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}
