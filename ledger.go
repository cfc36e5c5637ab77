package investlog

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// Ledger is a validated, immutable collection of records sharing one
// currency. It is safe for concurrent use.
type Ledger struct {
	currency string
	records  []Record // sorted by id
	index    map[int64]int
}

// NewLedger validates records and returns them as a Ledger. currency is the
// ledger currency; when empty it is taken from the first record.
//
// Invalid records, duplicated ids and foreign currencies are reported as
// *DataIntegrityError, all of them joined.
func NewLedger(currency string, records ...Record) (*Ledger, error) {
	if currency == "" && len(records) > 0 {
		currency = records[0].Currency()
	}
	l := &Ledger{
		currency: currency,
		records:  slices.Clone(records),
		index:    make(map[int64]int, len(records)),
	}
	slices.SortFunc(l.records, func(a, b Record) int { return cmp.Compare(a.id, b.id) })

	var errs []error
	for i, r := range l.records {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
		if r.Currency() != currency {
			errs = append(errs, integrity(r, "currency", "ledger is in %q, got %q", currency, r.Currency()))
		}
		if _, exists := l.index[r.id]; exists {
			errs = append(errs, integrity(r, "id", "duplicated"))
			continue
		}
		l.index[r.id] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return l, nil
}

// Currency returns the ledger currency.
func (l *Ledger) Currency() string { return l.currency }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Records iterates over the records in id order.
func (l *Ledger) Records() iter.Seq[Record] { return slices.Values(l.records) }

// Get returns the record with this id.
func (l *Ledger) Get(id int64) (Record, bool) {
	i, ok := l.index[id]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// NextID returns the id a new record should use.
func (l *Ledger) NextID() int64 {
	if len(l.records) == 0 {
		return 1
	}
	return l.records[len(l.records)-1].id + 1
}

// Search runs q over the ledger, see [Search].
func (l *Ledger) Search(q Query) ([]Record, Aggregate) { return Search(l.records, q) }

// Summary is the aggregate over the whole ledger.
func (l *Ledger) Summary() Aggregate { return Summarize(l.records) }

// Chronological returns the records by date, then id. It is the canonical
// order of a ledger file.
func (l *Ledger) Chronological() []Record {
	recs := slices.Clone(l.records)
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return recs
}

// Options lists the values present in the ledger for each categorical
// filter, to populate selection lists.
type Options struct {
	AssetTypes []AssetType       `json:"assetTypes"`
	Types      []TransactionType `json:"types"`
	Sectors    []Sector          `json:"sectors"`
}

// Options returns the distinct asset types (in display order), transaction
// types and sectors (sorted) used in the ledger.
func (l *Ledger) Options() Options {
	seenType := make(map[AssetType]bool)
	seenTx := make(map[TransactionType]bool)
	seenSector := make(map[Sector]bool)
	var o Options
	for _, r := range l.records {
		seenType[r.assetType] = true
		seenTx[r.txType] = true
		if r.sector != "" && !seenSector[r.sector] {
			seenSector[r.sector] = true
			o.Sectors = append(o.Sectors, r.sector)
		}
	}
	for _, t := range AssetTypes {
		if seenType[t] {
			o.AssetTypes = append(o.AssetTypes, t)
		}
	}
	for _, t := range []TransactionType{Buy, Sell} {
		if seenTx[t] {
			o.Types = append(o.Types, t)
		}
	}
	slices.Sort(o.Sectors)
	return o
}

// Append returns a new ledger with r added. The receiver is unchanged.
func (l *Ledger) Append(r Record) (*Ledger, error) {
	if _, exists := l.index[r.id]; exists {
		return nil, fmt.Errorf("cannot append: %w", integrity(r, "id", "duplicated"))
	}
	return NewLedger(l.currency, append(slices.Clone(l.records), r)...)
}
