package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/investlog"
)

// historyCmd is the transaction history: the latest transactions first,
// within a period.
type historyCmd struct {
	period string
	out    queryFlags
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the transactions of a recent period" }
func (*historyCmd) Usage() string {
	return `ivl history [-period all|7days|30days|90days] [-q <term>] [-type <asset type>] [-tx buy|sell]

  Lists the transactions of the period, most recent first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "all", "Period: all, 7days, 30days or 90days")
	f.StringVar(&c.out.params.Term, "q", "", "Search term, matched against asset names and notes")
	f.StringVar(&c.out.params.AssetType, "type", "", "Asset type")
	f.StringVar(&c.out.params.Type, "tx", "", "Transaction type: buy or sell")
	f.BoolVar(&c.out.json, "json", false, "Print the result as JSON")
	f.StringVar(&c.out.sel, "select", "", "JSONPath expression selecting a part of the JSON result")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	preset, err := investlog.ParsePreset(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	params := c.out.params
	params.Preset = string(preset)
	return runSearch(ctx, "Riwayat Transaksi: "+preset.Label(), params, &c.out)
}
