package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitUsage    = 2
	exitReloaded = 3
)

// exitCodeError carries a process exit code alongside the error cobra
// prints.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return exitError
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	metrics    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "credfetch",
		Short: "Credentialed HTTP fetches with 401 handling",
		Long: `credfetch sends HTTP requests with a persistent cookie jar.

Fetch with a JSON content type; a 401 fails with "Unauthorized":
	credfetch fetch https://app.example.com/api/me

Fetch through the API wrapper; a 401 clears the cookie jar instead:
	credfetch api https://app.example.com/api/items -X POST -d '{"name":"x"}'

Inspect or wipe stored cookies:
	credfetch cookies list`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/credfetch/config.yaml)")
	root.PersistentFlags().BoolVar(&g.metrics, "metrics", false, "dump counters to stderr on exit")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newFetchCmd(g))
	root.AddCommand(newAPICmd(g))
	root.AddCommand(newCookiesCmd(g))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "credfetch %s (%s) built %s\n", version, commit, date)
		},
	})

	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err))
}
