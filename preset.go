package investlog

import (
	"fmt"
	"strings"
)

// Preset is a named date range relative to a reference day, like the quick
// filters "last 7 days" or "this year".
type Preset string

const (
	PresetAll     Preset = "all"
	PresetToday   Preset = "today"
	PresetWeek    Preset = "week"
	PresetMonth   Preset = "month"
	PresetQuarter Preset = "quarter"
	PresetYear    Preset = "year"
	Preset7Days   Preset = "7days"
	Preset30Days  Preset = "30days"
	Preset90Days  Preset = "90days"
)

// Presets lists the supported presets.
var Presets = []Preset{PresetAll, PresetToday, PresetWeek, PresetMonth, PresetQuarter, PresetYear, Preset7Days, Preset30Days, Preset90Days}

// ParsePreset parses a preset name, "" is PresetAll.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PresetAll, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return PresetAll, fmt.Errorf("unknown preset %q", s)
}

// Label returns the Indonesian display name.
func (p Preset) Label() string {
	switch p {
	case PresetToday:
		return "Hari Ini"
	case PresetWeek:
		return "7 Hari"
	case PresetMonth:
		return "1 Bulan"
	case PresetQuarter:
		return "3 Bulan"
	case PresetYear:
		return "1 Tahun"
	case Preset7Days:
		return "7 Hari Terakhir"
	case Preset30Days:
		return "30 Hari Terakhir"
	case Preset90Days:
		return "90 Hari Terakhir"
	default:
		return "Semua Periode"
	}
}

// Range returns the dates covered by p as seen on day now. Callers evaluate
// now once per query so that results are reproducible.
//
// The quick filters (today .. year) end on now. The history periods (7days,
// 30days, 90days) only bound the age of a record: at most N days old.
func (p Preset) Range(now Date) Range {
	switch p {
	case PresetToday:
		return NewRange(now, now)
	case PresetWeek:
		return NewRange(now.Add(-7), now)
	case PresetMonth:
		return NewRange(now.AddMonth(-1), now)
	case PresetQuarter:
		return NewRange(now.AddMonth(-3), now)
	case PresetYear:
		return NewRange(now.StartOf(Yearly), now)
	case Preset7Days:
		return Range{From: now.Add(-7)}
	case Preset30Days:
		return Range{From: now.Add(-30)}
	case Preset90Days:
		return Range{From: now.Add(-90)}
	default:
		return Range{}
	}
}
