package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/investlog/server"
)

type serveCmd struct {
	port  int
	check string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger as a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `ivl serve [-port <port>] [-check <cron schedule>]

  Serves the search, the dashboard and the transaction form over HTTP until
  interrupted. See 'ivl topic api'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Port to listen on (default $IVL_PORT or 8080)")
	f.StringVar(&c.check, "check", "", `Cron schedule of the ledger integrity check, like "@every 1h"`)
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.port != 0 {
		a.cfg.Port = c.port
		if err := a.cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	srv, err := server.New(server.Config{
		Addr:          a.cfg.Addr(),
		Log:           a.log,
		Source:        a.source,
		Currency:      a.cfg.Currency,
		DevMode:       a.cfg.DevMode,
		CheckSchedule: c.check,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := make(chan error, 1)
	go func() { failed <- srv.Start() }()

	select {
	case err := <-failed:
		if err != nil {
			a.log.Error().Err(err).Msg("server failed")
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("server forced to shutdown")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
