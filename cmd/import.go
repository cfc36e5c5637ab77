package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/etnz/investlog/store"
)

type importCmd struct {
	db string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "copy the ledger file into an SQLite database" }
func (*importCmd) Usage() string {
	return `ivl import -db <database>

  Validates the ledger file and copies its transactions into the database,
  creating it if needed. Nothing is written when a transaction is invalid
  or already stored. Use the global -db flag afterwards to read from it.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "", "SQLite database to import into (required)")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		fmt.Fprintln(os.Stderr, "Error: -db is required")
		return subcommands.ExitUsageError
	}
	if *databaseFile != "" {
		fmt.Fprintln(os.Stderr, "Error: import reads the ledger file, drop the global -db flag")
		return subcommands.ExitUsageError
	}

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

	db, err := store.Open(c.db, a.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := db.Import(ctx, slices.Collect(ledger.Records())); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing into %q: %v\n", c.db, err)
		return subcommands.ExitFailure
	}
	a.log.Info().Str("db", c.db).Int("records", ledger.Len()).Msg("ledger imported")
	return subcommands.ExitSuccess
}
