package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/renderer"
	"github.com/etnz/investlog/store"
)

func TestSearchCmd(t *testing.T) {
	out := setGlobals(t, SampleLedger, "")

	status := run(t, &searchCmd{}, "-type", "saham", "-min", "4000000")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.True(t, strings.HasPrefix(out.String(), "# Hasil Pencarian\n"))
	assert.Contains(t, out.String(), "| 1 | 2024-01-15 | BBRI.JK |")
	assert.Contains(t, out.String(), "| 5 | 2023-12-20 | BMRI.JK |")
	assert.NotContains(t, out.String(), "TLKM.JK")
}

func TestSearchCmd_JSON(t *testing.T) {
	out := setGlobals(t, SampleLedger, "")

	status := run(t, &searchCmd{}, "-tx", "sell", "-select", "$.aggregate.netProfit.amount")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "500000\n", out.String())

	out.Reset()
	status = run(t, &searchCmd{}, "-q", "nothing like this", "-json")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), `"records": []`)
	assert.Contains(t, out.String(), `"active_filters": 1`)
}

func TestSearchCmd_BadParams(t *testing.T) {
	setGlobals(t, SampleLedger, "")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &searchCmd{}, "-min", "abc"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &searchCmd{}, "-type", "stocks"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &searchCmd{}, "-preset", "decade"))
}

func TestSearchCmd_InvalidLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":1,"date":"2024-01-01","asset":"","type":"saham","tx":"buy","principal":1,"current":1}`+"\n"), 0o644))
	setGlobals(t, path, "")
	assert.Equal(t, subcommands.ExitFailure, run(t, &searchCmd{}))
}

func TestHistoryCmd(t *testing.T) {
	out := setGlobals(t, SampleLedger, "")

	status := run(t, &historyCmd{}, "-period", "7days", "-select", "$.records[*].id")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.JSONEq(t, "[1, 2, 3, 4]", out.String())

	out.Reset()
	status = run(t, &historyCmd{}, "-period", "30days")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.True(t, strings.HasPrefix(out.String(), "# Riwayat Transaksi: 30 Hari Terakhir\n"), out.String())

	assert.Equal(t, subcommands.ExitUsageError, run(t, &historyCmd{}, "-period", "decade"))
}

func TestShowCmd(t *testing.T) {
	out := setGlobals(t, SampleLedger, "")

	require.Equal(t, subcommands.ExitSuccess, run(t, &showCmd{}, "3"))
	r, _ := investlog.SampleSource{}.Records(context.Background())
	assert.Equal(t, renderer.RenderRecord(r[2]), out.String())

	assert.Equal(t, subcommands.ExitFailure, run(t, &showCmd{}, "99"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &showCmd{}, "x"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &showCmd{}))
}

func TestShowCmd_Database(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ivl.db")
	s, err := store.Open(db, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Import(context.Background(), investlog.SampleRecords()))
	require.NoError(t, s.Close())
	out := setGlobals(t, "", db)

	require.Equal(t, subcommands.ExitSuccess, run(t, &showCmd{}, "-json", "5"))
	assert.Contains(t, out.String(), `"id": 5`)
	assert.Equal(t, subcommands.ExitFailure, run(t, &showCmd{}, "99"))
}

func TestDashboardCmd(t *testing.T) {
	out := setGlobals(t, SampleLedger, "")

	require.Equal(t, subcommands.ExitSuccess, run(t, &dashboardCmd{}))
	assert.True(t, strings.HasPrefix(out.String(), "# Dashboard Investasi\n"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &dashboardCmd{}, "-select", "$.returns.best"))
	assert.Equal(t, "2\n", out.String())
}

func TestAddCmd(t *testing.T) {
	path := sampleFile(t)
	out := setGlobals(t, path, "")

	status := run(t, &addCmd{}, "-asset", "ASII.JK", "-type", "saham", "-amount", "1500000", "-d", "2024-01-16", "-sector", "automotive")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.True(t, strings.HasPrefix(out.String(), "# ASII.JK (#8)\n"), out.String())

	records, err := investlog.FileSource{Path: path}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 8)
	added := records[7]
	assert.Equal(t, int64(8), added.ID())
	assert.Equal(t, investlog.Buy, added.Type())
	assert.True(t, added.Current().Equal(investlog.IDR(1_500_000)), "current defaults to the amount")
	assert.Equal(t, investlog.Sector("automotive"), added.Sector())
}

func TestAddCmd_Errors(t *testing.T) {
	setGlobals(t, sampleFile(t), "")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &addCmd{}, "-asset", "X"), "amount is required")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &addCmd{}, "-asset", "X", "-amount", "-5"))

	setGlobals(t, SampleLedger, "")
	assert.Equal(t, subcommands.ExitFailure, run(t, &addCmd{}, "-asset", "X", "-amount", "5"), "sample is read-only")
}

func TestAddCmd_Database(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ivl.db")
	setGlobals(t, "", db)

	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "-asset", "Emas", "-type", "emas", "-amount", "1000000", "-d", "2024-01-01"))

	s, err := store.Open(db, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	r, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Emas", r.Asset())
}

func TestFmtCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	records := investlog.SampleRecords()
	require.NoError(t, investlog.FileSource{Path: path}.Rewrite([]investlog.Record{records[3], records[6], records[0]}))
	setGlobals(t, path, "")

	require.Equal(t, subcommands.ExitSuccess, run(t, &fmtCmd{}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `{"id":7,`), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `{"id":4,`), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `{"id":1,`), lines[2])

	setGlobals(t, SampleLedger, "")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &fmtCmd{}))
}

func TestImportCmd(t *testing.T) {
	setGlobals(t, sampleFile(t), "")
	db := filepath.Join(t.TempDir(), "ivl.db")

	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{}, "-db", db))
	assert.Equal(t, subcommands.ExitFailure, run(t, &importCmd{}, "-db", db), "records are already stored")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{}))

	s, err := store.Open(db, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	records, err := s.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, investlog.SampleRecords(), records)

	*databaseFile = db
	assert.Equal(t, subcommands.ExitUsageError, run(t, &importCmd{}, "-db", db))
}

func TestTopicCmd(t *testing.T) {
	out := setGlobals(t, "", "")

	require.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}, "ledger"))
	assert.True(t, strings.HasPrefix(out.String(), "# Ledger file\n"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}))
	assert.Contains(t, out.String(), "* search:")

	assert.Equal(t, subcommands.ExitFailure, run(t, &topicCmd{}, "nope"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}, "-list"))
	assert.Equal(t, "api\ndashboard\nledger\npresets\nsearch\n", out.String())
	assert.Contains(t, (&topicCmd{}).Usage(), "Topics: api, dashboard, ledger, presets, search")
}

func TestServeCmd_InvalidSchedule(t *testing.T) {
	setGlobals(t, SampleLedger, "")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &serveCmd{}, "-check", "every hour"))
}

func TestServeCmd_InvalidPort(t *testing.T) {
	setGlobals(t, SampleLedger, "")
	assert.Equal(t, subcommands.ExitUsageError, run(t, &serveCmd{}, "-port", "70000"))
}
