package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/etnz/investlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ImportAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	records, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, s.Import(ctx, investlog.SampleRecords()))

	records, err = s.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, investlog.SampleRecords(), records)

	l, err := investlog.LoadLedger(ctx, s, "IDR")
	require.NoError(t, err)
	got, agg := l.Search(investlog.NewQuery().WithAssetType(investlog.Stock))
	assert.Len(t, got, 4)
	assert.Equal(t, 4, agg.Count)
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Import(ctx, investlog.SampleRecords()))

	r, err := s.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Reksadana Saham ABC", r.Asset())
	assert.True(t, r.Profit().Equal(investlog.IDR(-125_000)))

	_, err = s.Get(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_Append(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	r := investlog.NewRecord(1, "ANTM.JK", investlog.Stock, investlog.Buy,
		investlog.MustParseDate("2024-02-01"), investlog.IDR(1_500_000), investlog.IDR(1_650_000))
	require.NoError(t, s.Append(ctx, r))
	assert.Error(t, s.Append(ctx, r), "duplicated id")

	invalid := investlog.NewRecord(2, "", investlog.Stock, investlog.Buy,
		investlog.MustParseDate("2024-02-01"), investlog.IDR(1), investlog.IDR(1))
	err := s.Append(ctx, invalid)
	var integrityErr *investlog.DataIntegrityError
	assert.True(t, errors.As(err, &integrityErr))

	records, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, r, records[0])
}

func TestStore_ImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	records := investlog.SampleRecords()
	records = append(records, records[0]) // duplicated id
	require.Error(t, s.Import(ctx, records))

	got, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_DetectsTamperedProfit(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Import(ctx, investlog.SampleRecords()))

	_, err := s.conn.ExecContext(ctx, `UPDATE records SET profit = profit + 1 WHERE id = 4`)
	require.NoError(t, err)

	_, err = s.Records(ctx)
	var integrityErr *investlog.DataIntegrityError
	require.True(t, errors.As(err, &integrityErr), "got %v", err)
	assert.Equal(t, int64(4), integrityErr.RecordID)
	assert.Equal(t, "profit", integrityErr.Field)
}
