// Package cmd implements the ivl command line application.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/config"
	"github.com/etnz/investlog/logger"
	"github.com/etnz/investlog/store"
)

// SampleLedger is the -ledger value selecting the built-in sample records.
const SampleLedger = "sample"

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Entry is a registered command and its help group.
type Entry struct {
	subcommands.Command
	Group string
}

// Commands lists the ivl commands.
func Commands() []Entry {
	return []Entry{
		{&searchCmd{}, "query"},
		{&historyCmd{}, "query"},
		{&showCmd{}, "query"},
		{&dashboardCmd{}, "query"},
		{&addCmd{}, "ledger"},
		{&fmtCmd{}, "ledger"},
		{&importCmd{}, "ledger"},
		{&serveCmd{}, "server"},
		{&topicCmd{}, "help"},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile   = flag.String("ledger", "", `JSONL ledger file, "sample" for the built-in records (default $IVL_LEDGER or transactions.jsonl)`)
	databaseFile = flag.String("db", "", "SQLite database to use instead of the ledger file (default $IVL_DB)")
	currency     = flag.String("currency", "", "Currency of the ledger (default $IVL_CURRENCY or IDR)")
	raw          = flag.Bool("raw", false, "Print markdown without terminal styling")
	Verbose      = flag.Bool("v", false, "Verbose logging")
)

// stdout receives the command results, logs go to stderr.
var stdout io.Writer = os.Stdout

// today is the reference day of relative dates.
var today = investlog.Today

// loadConfig reads the environment configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerPath = *ledgerFile
	}
	if *databaseFile != "" {
		cfg.DatabasePath = *databaseFile
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// app is the environment of a command: its configuration, logger and
// record source.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	source investlog.Source
	close  func() error
}

// openApp opens the record source selected by the configuration: the
// database when set, else the ledger file or the sample records.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a := &app{
		cfg:   cfg,
		log:   logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true}),
		close: func() error { return nil },
	}
	logger.SetGlobalLogger(a.log)

	switch {
	case cfg.DatabasePath != "":
		db, err := store.Open(cfg.DatabasePath, a.log)
		if err != nil {
			return nil, err
		}
		a.source, a.close = db, db.Close
	case cfg.LedgerPath == SampleLedger:
		a.source = investlog.SampleSource{}
	default:
		a.source = investlog.FileSource{Path: cfg.LedgerPath, Currency: cfg.Currency}
	}
	a.log.Debug().Str("ledger", cfg.LedgerPath).Str("db", cfg.DatabasePath).Msg("record source selected")
	return a, nil
}

// Close releases the record source.
func (a *app) Close() {
	if err := a.close(); err != nil {
		a.log.Warn().Err(err).Msg("cannot close record source")
	}
}

// record returns the record with this id. A database is queried directly,
// other sources are loaded whole.
func (a *app) record(ctx context.Context, id int64) (r investlog.Record, found bool, err error) {
	if db, ok := a.source.(*store.Store); ok {
		r, err = db.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return r, false, nil
		}
		return r, err == nil, err
	}
	ledger, err := a.ledger(ctx)
	if err != nil {
		return r, false, err
	}
	r, found = ledger.Get(id)
	return r, found, nil
}

// ledger loads and validates the records of the source.
func (a *app) ledger(ctx context.Context) (*investlog.Ledger, error) {
	return investlog.LoadLedger(ctx, a.source, a.cfg.Currency)
}

// printMarkdown prints md to stdout, styled for the terminal unless -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

// printJSON prints v as indented JSON. A non empty sel is a JSONPath
// expression selecting the part of v to print.
func printJSON(v any, sel string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if sel != "" {
		if doc, err = jsonpath.Get(sel, doc); err != nil {
			return fmt.Errorf("cannot select %q: %w", sel, err)
		}
	}
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
