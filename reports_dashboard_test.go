package investlog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDashboard(t *testing.T) {
	l, err := NewLedger("IDR", SampleRecords()...)
	require.NoError(t, err)

	d := NewDashboard(l)
	assert.Equal(t, 7, d.Totals.Count)
	assert.True(t, d.Totals.Current.Equal(IDR(28_705_000)))

	var types []AssetType
	var share Percent
	for _, a := range d.Allocation {
		types = append(types, a.AssetType)
		share += a.Share
	}
	assert.Equal(t, []AssetType{Stock, Bond, MutualFund, Gold}, types)
	assert.True(t, share.Within(100, 0.001), "shares add up to 100%%, got %v", share)
	assert.True(t, d.Allocation[0].Current.Equal(IDR(14_750_000)))

	var months []string
	var counts []int
	for _, m := range d.Trend {
		months = append(months, m.Month)
		counts = append(counts, m.Total.Count)
	}
	assert.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01"}, months)
	assert.Equal(t, []int{1, 1, 1, 4}, counts)

	assert.Equal(t, []int64{1, 2, 3}, ids(d.Recent))

	// returns: 5, 16.67, -5, 8, 5, -10, 5
	assert.True(t, d.Returns.Mean.Within(3.5238, 0.001), "got %v", d.Returns.Mean)
	assert.Greater(t, float64(d.Returns.StdDev), 0.0)
	assert.Equal(t, int64(2), d.Returns.Best)
	assert.Equal(t, int64(6), d.Returns.Worst)
}

func TestNewDashboard_EmptyMonths(t *testing.T) {
	l, err := NewLedger("IDR",
		NewRecord(1, "A", Gold, Buy, MustParseDate("2024-01-31"), IDR(100), IDR(110)),
		NewRecord(2, "B", Gold, Buy, MustParseDate("2024-03-01"), IDR(100), IDR(90)),
	)
	require.NoError(t, err)

	d := NewDashboard(l)
	require.Len(t, d.Trend, 3)
	assert.Equal(t, "2024-02", d.Trend[1].Month)
	assert.Equal(t, 0, d.Trend[1].Total.Count)
	assert.Len(t, d.Recent, 2)
}

func TestDashboard_MarshalJSON(t *testing.T) {
	empty, err := NewLedger("IDR")
	require.NoError(t, err)
	b, err := json.Marshal(NewDashboard(empty))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"totals": {"count":0, "principal":{"amount":0}, "current":{"amount":0}, "netProfit":{"amount":0}, "roi":0},
		"allocation": [], "trend": [], "recent": [],
		"returns": {"mean":0, "stdDev":0, "best":0, "worst":0}
	}`, string(b))

	l, err := NewLedger("IDR", SampleRecords()...)
	require.NoError(t, err)
	b, err = json.Marshal(NewDashboard(l))
	require.NoError(t, err)

	var got struct {
		Trend []map[string]any `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Trend, 4)
	assert.Equal(t, "2023-10", got.Trend[0]["month"])
	assert.Equal(t, float64(1), got.Trend[0]["count"])
}
