package investlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// A ledger file is a JSONL file: one record per line, keys in a fixed order so
// that it stays human readable and git friendly.
//
//	{"id":1,"date":"2024-01-15","asset":"BBRI.JK","type":"saham","tx":"buy","currency":"IDR","principal":5000000,"current":5250000,"profit":250000,"profitPercentage":5,"sector":"financial","notes":"..."}
//
// profit and profitPercentage are written for human readers. They are
// optional when reading, and checked against the principal and the current
// value when present.

// jrecord is the object read from a ledger line.
type jrecord struct {
	ID               int64            `json:"id"`
	Date             Date             `json:"date"`
	Asset            string           `json:"asset"`
	Type             string           `json:"type"`
	Tx               string           `json:"tx"`
	Currency         string           `json:"currency"`
	Principal        decimal.Decimal  `json:"principal"`
	Current          decimal.Decimal  `json:"current"`
	Profit           *decimal.Decimal `json:"profit"`
	ProfitPercentage *decimal.Decimal `json:"profitPercentage"`
	Sector           Sector           `json:"sector"`
	Notes            string           `json:"notes"`
}

func (j jrecord) record(currency string) (Record, error) {
	if j.Currency != "" {
		currency = j.Currency
	}
	principal, err := MoneyFromDecimal(j.Principal, currency)
	if err != nil {
		return Record{}, fmt.Errorf("invalid principal: %w", err)
	}
	current, err := MoneyFromDecimal(j.Current, currency)
	if err != nil {
		return Record{}, fmt.Errorf("invalid current value: %w", err)
	}
	// unknown types are kept verbatim, Validate reports them.
	assetType := AssetType(j.Type)
	if t, err := ParseAssetType(j.Type); err == nil && j.Type != "" {
		assetType = t
	}
	txType := TransactionType(j.Tx)
	if t, err := ParseTransactionType(j.Tx); err == nil && j.Tx != "" {
		txType = t
	}

	r := NewRecord(j.ID, j.Asset, assetType, txType, j.Date, principal, current).
		WithSector(j.Sector).
		WithNotes(j.Notes)
	if err := r.Validate(); err != nil {
		return Record{}, err
	}

	if j.Profit != nil || j.ProfitPercentage != nil {
		profit, percent := r.Profit(), r.ProfitPercent()
		if j.Profit != nil {
			if profit, err = MoneyFromDecimal(*j.Profit, currency); err != nil {
				return Record{}, fmt.Errorf("invalid profit: %w", err)
			}
		}
		if j.ProfitPercentage != nil {
			percent = Percent(j.ProfitPercentage.InexactFloat64())
		}
		if err := r.CheckDerived(profit, percent); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}

// DecodeRecords reads the records of a ledger file. filename is for error
// messages only. currency applies to lines without a currency.
//
// Errors are prefixed with "filename:line" and wrap the *DataIntegrityError
// when the line is well formed but the record is not.
func DecodeRecords(r io.Reader, filename, currency string) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		var j jrecord
		if err := json.Unmarshal(line, &j); err != nil {
			return nil, fmt.Errorf("%s:%d: not a correct json: %w", filename, i, err)
		}
		rec, err := j.record(currency)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, i, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	return records, nil
}

// EncodeRecord returns the canonical ledger line of r, without the newline.
func EncodeRecord(r Record) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.id)
	w.Append("date", r.date)
	w.Append("asset", r.asset)
	w.Append("type", r.assetType)
	w.Append("tx", r.txType)
	w.Append("currency", r.Currency())
	w.Append("principal", r.principal.Decimal())
	w.Append("current", r.current.Decimal())
	w.Append("profit", r.Profit().Decimal())
	w.Append("profitPercentage", decimal.NewFromFloat(float64(r.ProfitPercent())).Round(2))
	w.Optional("sector", r.sector)
	w.Optional("notes", r.notes)
	return w.MarshalJSON()
}

// EncodeRecords writes records, one per line, in the given order.
func EncodeRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		line, err := EncodeRecord(r)
		if err != nil {
			return fmt.Errorf("cannot encode %v: %w", r, err)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
