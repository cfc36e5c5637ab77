package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/renderer"
)

// addCmd is the transaction entry form.
type addCmd struct {
	form investlog.Form
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `ivl add -asset <name> -amount <principal> [-type <asset type>] [-tx buy|sell]
        [-current <value>] [-d <date>] [-sector <sector>] [-notes <text>]

  Appends a transaction to the ledger, with the next free id.

Usage Examples:
$ ivl add -asset BBRI.JK -type saham -amount 5000000 -current 5250000 -d 2024-01-15

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.Asset, "asset", "", "Asset name (required)")
	f.StringVar(&c.form.AssetType, "type", "", "Asset type (default lainnya)")
	f.StringVar(&c.form.Tx, "tx", "", "Transaction type: buy or sell (default buy)")
	f.StringVar(&c.form.Amount, "amount", "", "Principal (required)")
	f.StringVar(&c.form.Current, "current", "", "Current value (default the principal)")
	f.StringVar(&c.form.Date, "d", "0d", "Transaction date. See 'ivl topic presets' for relative dates.")
	f.StringVar(&c.form.Sector, "sector", "", "Sector tag")
	f.StringVar(&c.form.Notes, "notes", "", "Notes")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	appender, ok := a.source.(investlog.Appender)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: the sample ledger is read-only")
		return subcommands.ExitFailure
	}

	if err := c.form.Validate(a.cfg.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := a.ledger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	r, err := c.form.Record(ledger.NextID(), ledger.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := ledger.Append(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := appender.Append(ctx, r); err != nil {
		var integrity *investlog.DataIntegrityError
		if errors.As(err, &integrity) {
			fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", integrity)
		} else {
			fmt.Fprintf(os.Stderr, "Error saving transaction: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	a.log.Info().Int64("id", r.ID()).Str("asset", r.Asset()).Msg("transaction recorded")

	printMarkdown(renderer.RenderRecord(r))
	return subcommands.ExitSuccess
}
