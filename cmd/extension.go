package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"github.com/etnz/investlog/config"
)

// ExtensionPrefix prefixes the name of the external ivl-<subcommand> binaries.
const ExtensionPrefix = "ivl-"

// RunExtension attempts to find and execute an external ivl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The global flags are passed to the extension as the environment variables
// read by the config package, so that it works on the same ledger.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	for key, value := range map[string]string{
		config.EnvLedger:   *ledgerFile,
		config.EnvDatabase: *databaseFile,
		config.EnvCurrency: *currency,
	} {
		if value != "" {
			cmd.Env = append(cmd.Env, key+"="+value)
		}
	}
	if *Verbose {
		cmd.Env = append(cmd.Env, config.EnvLogLevel+"=debug")
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
