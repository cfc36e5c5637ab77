package investlog

import (
	"fmt"
	"strings"
)

// AssetType is the kind of asset a transaction is about.
type AssetType string

const (
	Stock      AssetType = "saham"
	Bond       AssetType = "obligasi"
	MutualFund AssetType = "reksadana"
	Gold       AssetType = "emas"
	Crypto     AssetType = "crypto"
	RealEstate AssetType = "properti"
	OtherAsset AssetType = "lainnya"
	AnyAsset   AssetType = Any
)

// Any is the sentinel filter value meaning "do not filter on this dimension".
const Any = "all"

// AssetTypes lists the known asset types in display order.
var AssetTypes = []AssetType{Stock, Bond, MutualFund, Gold, Crypto, RealEstate, OtherAsset}

// Label returns the Indonesian display name.
func (a AssetType) Label() string {
	switch a {
	case Stock:
		return "Saham"
	case Bond:
		return "Obligasi"
	case MutualFund:
		return "Reksadana"
	case Gold:
		return "Emas"
	case Crypto:
		return "Cryptocurrency"
	case RealEstate:
		return "Properti"
	case OtherAsset:
		return "Lainnya"
	case AnyAsset, "":
		return "Semua Jenis"
	default:
		return string(a)
	}
}

func (a AssetType) known() bool {
	for _, k := range AssetTypes {
		if a == k {
			return true
		}
	}
	return false
}

// ParseAssetType parses an asset type. English aliases are accepted, "" and
// "all" return AnyAsset.
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", Any:
		return AnyAsset, nil
	case "saham", "equity", "stock":
		return Stock, nil
	case "obligasi", "bond":
		return Bond, nil
	case "reksadana", "fund":
		return MutualFund, nil
	case "emas", "gold":
		return Gold, nil
	case "crypto", "cryptocurrency":
		return Crypto, nil
	case "properti", "realestate":
		return RealEstate, nil
	case "lainnya", "other":
		return OtherAsset, nil
	default:
		return "", fmt.Errorf("unknown asset type %q", s)
	}
}

// TransactionType is either a buy or a sell.
type TransactionType string

const (
	Buy     TransactionType = "buy"
	Sell    TransactionType = "sell"
	AnyType TransactionType = Any
)

// Label returns the Indonesian display name.
func (t TransactionType) Label() string {
	switch t {
	case Buy:
		return "Beli"
	case Sell:
		return "Jual"
	default:
		return "Semua Transaksi"
	}
}

// ParseTransactionType parses "buy" or "sell", "" and "all" return AnyType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", Any:
		return AnyType, nil
	case "buy", "beli":
		return Buy, nil
	case "sell", "jual":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Sector is an optional free categorical tag, like "financial".
type Sector string

const AnySector Sector = Any

// Record is a single investment transaction. Records are immutable: the
// With* methods return modified copies. Profit and its percentage are always
// derived from the principal and the current value.
type Record struct {
	id        int64
	asset     string
	assetType AssetType
	txType    TransactionType
	date      Date
	principal Money
	current   Money
	sector    Sector
	notes     string
}

// NewRecord creates a record. It is not validated, see [Record.Validate].
func NewRecord(id int64, asset string, assetType AssetType, txType TransactionType, on Date, principal, current Money) Record {
	return Record{
		id:        id,
		asset:     asset,
		assetType: assetType,
		txType:    txType,
		date:      on,
		principal: principal,
		current:   current,
	}
}

// WithSector returns a copy of r with the sector set.
func (r Record) WithSector(s Sector) Record { r.sector = s; return r }

// WithNotes returns a copy of r with the notes set.
func (r Record) WithNotes(n string) Record { r.notes = n; return r }

// WithID returns a copy of r with another id.
func (r Record) WithID(id int64) Record { r.id = id; return r }

func (r Record) ID() int64             { return r.id }
func (r Record) Asset() string         { return r.asset }
func (r Record) AssetType() AssetType  { return r.assetType }
func (r Record) Type() TransactionType { return r.txType }
func (r Record) Date() Date            { return r.date }
func (r Record) Principal() Money      { return r.principal }
func (r Record) Current() Money        { return r.current }
func (r Record) Sector() Sector        { return r.sector }
func (r Record) Notes() string         { return r.notes }
func (r Record) Currency() string      { return r.principal.Currency() }

// Profit is the current value minus the principal.
func (r Record) Profit() Money { return r.current.Sub(r.principal) }

// ProfitPercent is the profit relative to the principal, 0 for a zero principal.
func (r Record) ProfitPercent() Percent { return Ratio(r.Profit(), r.principal) }

func (r Record) String() string {
	return fmt.Sprintf("#%d %s %s %s", r.id, r.date, r.txType, r.asset)
}

// containsText reports whether the lower-cased term t is in the asset name or the notes.
func (r Record) containsText(t string) bool {
	return strings.Contains(strings.ToLower(r.asset), t) || strings.Contains(strings.ToLower(r.notes), t)
}

// MarshalJSON writes the record with its derived values, for the API.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.id)
	w.Append("date", r.date)
	w.Append("asset", r.asset)
	w.Append("type", r.assetType)
	w.Append("tx", r.txType)
	w.Append("principal", r.principal)
	w.Append("current", r.current)
	w.Append("profit", r.Profit())
	w.Append("profitPercentage", r.ProfitPercent())
	w.Optional("sector", r.sector)
	w.Optional("notes", r.notes)
	return w.MarshalJSON()
}
