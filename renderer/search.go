package renderer

import (
	"fmt"

	"github.com/etnz/investlog"
)

// SearchResult is the view of a search: the query in words, the matching
// records and their aggregate.
type SearchResult struct {
	Title   string
	Filters []string
	Sort    string
	Records []investlog.Record
	Total   investlog.Aggregate
}

// NewSearchResult describes the outcome of running q.
func NewSearchResult(title string, q investlog.Query, records []investlog.Record, total investlog.Aggregate) *SearchResult {
	return &SearchResult{
		Title:   title,
		Filters: describeFilters(q),
		Sort:    describeSort(q),
		Records: records,
		Total:   total,
	}
}

func describeFilters(q investlog.Query) []string {
	var filters []string
	if q.Term != "" {
		filters = append(filters, fmt.Sprintf("Kata kunci: %q", q.Term))
	}
	if q.AssetType != "" && q.AssetType != investlog.AnyAsset {
		filters = append(filters, "Jenis: "+q.AssetType.Label())
	}
	if q.Type != "" && q.Type != investlog.AnyType {
		filters = append(filters, "Transaksi: "+q.Type.Label())
	}
	if q.Sector != "" && q.Sector != investlog.AnySector {
		filters = append(filters, "Sektor: "+string(q.Sector))
	}
	if !q.Dates.IsZero() {
		filters = append(filters, "Periode: "+bound(q.Dates.From.String())+" s/d "+bound(q.Dates.To.String()))
	}
	switch a := q.Amount; {
	case a.HasMin && a.HasMax:
		filters = append(filters, fmt.Sprintf("Modal: %v s/d %v", a.Min, a.Max))
	case a.HasMin:
		filters = append(filters, fmt.Sprintf("Modal: min %v", a.Min))
	case a.HasMax:
		filters = append(filters, fmt.Sprintf("Modal: maks %v", a.Max))
	}
	return filters
}

func bound(s string) string {
	if s == "" {
		return "..."
	}
	return s
}

func describeSort(q investlog.Query) string {
	key := map[investlog.SortKey]string{
		investlog.SortByDate:   "tanggal",
		investlog.SortByAmount: "jumlah",
		investlog.SortByProfit: "profit",
		investlog.SortByName:   "nama",
	}[q.SortBy]
	if key == "" {
		key = "tanggal"
	}
	if q.Order == investlog.Ascending {
		return key + ", naik"
	}
	return key + ", turun"
}
