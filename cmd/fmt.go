package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/investlog"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `ivl fmt

  Validates and formats the ledger file. This command reads all transactions,
  validates them, sorts them by date then id, and writes them back in the
  canonical JSONL form. See 'ivl topic ledger'.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	file, ok := a.source.(investlog.FileSource)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: fmt formats a ledger file, not a database nor the sample records")
		return subcommands.ExitUsageError
	}

	ledger, err := a.ledger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := file.Rewrite(ledger.Chronological()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", file.Path, err)
		return subcommands.ExitFailure
	}
	a.log.Info().Str("ledger", file.Path).Int("records", ledger.Len()).Msg("ledger formatted")
	return subcommands.ExitSuccess
}
