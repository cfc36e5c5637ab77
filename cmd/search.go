package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/renderer"
)

// queryFlags are the flags shared by the commands that search the ledger.
type queryFlags struct {
	params investlog.QueryParams
	json   bool
	sel    string
}

func (q *queryFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&q.params.Term, "q", "", "Search term, matched against asset names and notes")
	f.StringVar(&q.params.AssetType, "type", "", "Asset type: "+strings.Join(assetTypeNames(), ", "))
	f.StringVar(&q.params.Type, "tx", "", "Transaction type: buy or sell")
	f.StringVar(&q.params.Sector, "sector", "", "Sector tag")
	f.StringVar(&q.params.From, "from", "", "Earliest transaction date. See 'ivl topic presets' for relative dates.")
	f.StringVar(&q.params.To, "to", "", "Latest transaction date")
	f.StringVar(&q.params.Min, "min", "", "Minimum principal")
	f.StringVar(&q.params.Max, "max", "", "Maximum principal")
	f.StringVar(&q.params.Preset, "preset", "", "Date range relative to today: "+strings.Join(presetNames(), ", "))
	f.StringVar(&q.params.SortBy, "sort", "date", "Sort key: date, amount, profit or name")
	f.StringVar(&q.params.Order, "order", "desc", "Sort order: asc or desc")
	f.BoolVar(&q.json, "json", false, "Print the result as JSON")
	f.StringVar(&q.sel, "select", "", "JSONPath expression selecting a part of the JSON result")
}

func assetTypeNames() []string {
	names := []string{string(investlog.AnyAsset)}
	for _, t := range investlog.AssetTypes {
		names = append(names, string(t))
	}
	return names
}

func presetNames() []string {
	var names []string
	for _, p := range investlog.Presets {
		names = append(names, string(p))
	}
	return names
}

// searchResult is the JSON output of a search.
type searchResult struct {
	Records       []investlog.Record  `json:"records"`
	Aggregate     investlog.Aggregate `json:"aggregate"`
	ActiveFilters int                 `json:"active_filters"`
}

// runSearch evaluates the query typed in params on the ledger and prints
// the result.
func runSearch(ctx context.Context, title string, params investlog.QueryParams, output *queryFlags) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	q, err := params.Query(today(), a.cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := a.ledger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	records, agg := ledger.Search(q)
	a.log.Debug().Int("matches", agg.Count).Int("filters", q.ActiveFilters()).Msg("search done")

	if output.json || output.sel != "" {
		if records == nil {
			records = []investlog.Record{}
		}
		if err := printJSON(searchResult{records, agg, q.ActiveFilters()}, output.sel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderSearch(renderer.NewSearchResult(title, q, records, agg)))
	return subcommands.ExitSuccess
}

type searchCmd struct {
	queryFlags
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "filter, sort and total the transactions" }
func (*searchCmd) Usage() string {
	return `ivl search [-q <term>] [-type <asset type>] [-tx buy|sell] [-sector <sector>]
           [-from <date>] [-to <date>] [-preset <preset>] [-min <amount>] [-max <amount>]
           [-sort date|amount|profit|name] [-order asc|desc] [-json] [-select <jsonpath>]

  Lists the transactions matching every given filter, with their totals.
  See 'ivl topic search'.

Usage Examples:
# Equities worth at least 4 million
$ ivl search -type saham -min 4000000

# Net profit of this year's sales
$ ivl search -tx sell -preset year -select '$.aggregate.netProfit.amount'

`
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runSearch(ctx, "Hasil Pencarian", c.params, &c.queryFlags)
}
