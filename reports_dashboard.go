package investlog

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// recentCount is the number of transactions listed on the dashboard.
const recentCount = 3

// Dashboard is the overview report of a ledger.
type Dashboard struct {
	Totals     Aggregate
	Allocation []Allocation
	Trend      []MonthlyTrend
	Returns    Returns
	Recent     []Record // most recent first
}

// Returns describes the spread of the profit percentages of the records.
type Returns struct {
	Mean   Percent `json:"mean"`
	StdDev Percent `json:"stdDev"` // sample standard deviation, 0 below two records
	Best   int64   `json:"best"`   // id of the record with the highest profit percentage
	Worst  int64   `json:"worst"`
}

func newReturns(records []Record) Returns {
	if len(records) == 0 {
		return Returns{}
	}
	x := make([]float64, len(records))
	best, worst := records[0], records[0]
	for i, r := range records {
		x[i] = float64(r.ProfitPercent())
		if r.ProfitPercent() > best.ProfitPercent() {
			best = r
		}
		if r.ProfitPercent() < worst.ProfitPercent() {
			worst = r
		}
	}
	ret := Returns{
		Mean:  Percent(stat.Mean(x, nil)),
		Best:  best.id,
		Worst: worst.id,
	}
	if len(x) > 1 {
		ret.StdDev = Percent(stat.StdDev(x, nil))
	}
	return ret
}

// Allocation is the share of the current value held in one asset type.
type Allocation struct {
	AssetType AssetType `json:"type"`
	Label     string    `json:"label"`
	Current   Money     `json:"current"`
	Share     Percent   `json:"share"`
}

// MonthlyTrend aggregates the transactions of one calendar month.
type MonthlyTrend struct {
	Month string // "2006-01"
	Range Range
	Total Aggregate
}

func (m MonthlyTrend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", m.Month)
	w.EmbedFrom(m.Total)
	return w.MarshalJSON()
}

// NewDashboard computes the dashboard of l. The trend covers every month
// from the oldest to the newest transaction, empty months included.
func NewDashboard(l *Ledger) *Dashboard {
	d := &Dashboard{Totals: l.Summary()}
	if l.Len() == 0 {
		return d
	}

	byType := make(map[AssetType]Money)
	for r := range l.Records() {
		byType[r.assetType] = byType[r.assetType].Add(r.current)
	}
	for t, current := range byType {
		d.Allocation = append(d.Allocation, Allocation{
			AssetType: t,
			Label:     t.Label(),
			Current:   current,
			Share:     Ratio(current, d.Totals.Current),
		})
	}
	slices.SortFunc(d.Allocation, func(a, b Allocation) int {
		if c, _ := b.Current.Compare(a.Current); c != 0 {
			return c
		}
		return cmp.Compare(slices.Index(AssetTypes, a.AssetType), slices.Index(AssetTypes, b.AssetType))
	})

	chrono := l.Chronological()
	span := NewRange(chrono[0].date.StartOf(Monthly), chrono[len(chrono)-1].date.EndOf(Monthly))
	for month := range span.Periods(Monthly) {
		_, total := Search(chrono, Query{Dates: month})
		d.Trend = append(d.Trend, MonthlyTrend{
			Month: month.Identifier(),
			Range: month,
			Total: total,
		})
	}

	d.Returns = newReturns(l.records)

	recent, _ := l.Search(NewQuery())
	d.Recent = recent[:min(recentCount, len(recent))]
	return d
}

func (d *Dashboard) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totals", d.Totals)
	w.Append("allocation", nonNil(d.Allocation))
	w.Append("trend", nonNil(d.Trend))
	w.Append("returns", d.Returns)
	w.Append("recent", nonNil(d.Recent))
	return w.MarshalJSON()
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
