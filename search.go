package investlog

import "slices"

// Aggregate summarizes a set of records.
type Aggregate struct {
	Count     int
	Principal Money   // sum of principals
	Current   Money   // sum of current values
	NetProfit Money   // Current - Principal
	ROI       Percent // NetProfit / Principal, 0 when Principal is zero
}

// Summarize computes the aggregate of records. It is defined for an empty
// set: every sum is zero and so is the ROI. Sums are exact as long as records
// are valid and fewer than 9000; see [MaxAmount].
func Summarize(records []Record) Aggregate {
	var a Aggregate
	for _, r := range records {
		a.Count++
		a.Principal = a.Principal.Add(r.principal)
		a.Current = a.Current.Add(r.current)
	}
	a.NetProfit = a.Current.Sub(a.Principal)
	a.ROI = Ratio(a.NetProfit, a.Principal)
	return a
}

func (a Aggregate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("count", a.Count)
	w.Append("principal", a.Principal)
	w.Append("current", a.Current)
	w.Append("netProfit", a.NetProfit)
	w.Append("roi", a.ROI)
	return w.MarshalJSON()
}

// Search returns the records matching q, in q order, and their aggregate.
//
// Search is a pure function: records is neither modified nor retained, so it
// can be called concurrently on a shared slice.
func Search(records []Record, q Query) ([]Record, Aggregate) {
	matches := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Match(r) {
			matches = append(matches, r)
		}
	}
	slices.SortStableFunc(matches, q.Compare)
	return matches, Summarize(matches)
}
