package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/renderer"
)

type dashboardCmd struct {
	json bool
	sel  string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the portfolio overview" }
func (*dashboardCmd) Usage() string {
	return `ivl dashboard [-json] [-select <jsonpath>]

  Displays the totals of the ledger, its allocation by asset type, the
  monthly trend, the spread of returns and the latest transactions.
  See 'ivl topic dashboard'.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the dashboard as JSON")
	f.StringVar(&c.sel, "select", "", "JSONPath expression selecting a part of the JSON dashboard")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ledger, err := a.ledger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	d := investlog.NewDashboard(ledger)

	if c.json || c.sel != "" {
		if err := printJSON(d, c.sel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderDashboard(d))
	return subcommands.ExitSuccess
}
