// Can-tracetool inspects CAN bus trace logs.
//
// It reads candump-style text captures, classifies every line as a decoded
// frame, an invalid line, or an ignored blank line, and reports the result
// as statistics, frame listings, or an interactive browser.
//
// Usage:
//
//	can-tracetool [command] [flags]
//
// See 'can-tracetool --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/cantrace/internal/logging"
	"github.com/muurk/cantrace/internal/urls"
	"github.com/muurk/cantrace/internal/version"
)

func main() {
	err := newRootCmd().Execute()
	logging.Sync()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// Global flags, shared by every subcommand
type globalOptions struct {
	configPath string
	logLevel   string
	workers    int
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "can-tracetool",
		Short: "CAN Bus Trace Inspection Utility",
		Long: `Inspect CAN bus trace logs captured with candump -l or similar tools.

Each line of the form

  (1436509052.249713) vcan0 044#2A366C2BBA

is decoded into a frame. Blank lines and # comments are ignored, anything
else is counted as invalid with the reason it was rejected.

Use "-" as the file name to read the trace from standard input.

Log format:     ` + urls.CanUtils + `
CAN frame info: ` + urls.SocketCAN,
		Version: version.Version,
		Example: `  # Summarise a capture
  can-tracetool stats capture.log

  # List the first 20 frames as a table
  can-tracetool frames capture.log --format table --limit 20

  # Show every invalid line
  can-tracetool check capture.log

  # Browse frames interactively
  can-tracetool view capture.log`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initLogging(cmd)
		},
	}

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (.yaml or .toml; default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().IntVar(&opts.workers, "workers", 0, "Classification goroutines (0 = one per CPU)")

	rootCmd.AddCommand(
		newStatsCmd(opts),
		newFramesCmd(opts),
		newCheckCmd(opts),
		newViewCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "can-tracetool %s\n", version.Full())
		},
	}
}
