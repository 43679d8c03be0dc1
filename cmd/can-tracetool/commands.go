package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/cantrace/internal/config"
	"github.com/muurk/cantrace/internal/logging"
	"github.com/muurk/cantrace/internal/report"
	"github.com/muurk/cantrace/internal/trace"
	"github.com/muurk/cantrace/internal/ui"
)

// stdinName is the file argument that reads the trace from standard input
const stdinName = "-"

// errInvalidLines makes 'check' exit non-zero when anything was rejected
var errInvalidLines = errors.New("trace contains invalid lines")

// initLogging runs before every command. A broken settings file does not
// stop logging from starting; commands that need settings report it.
func (o *globalOptions) initLogging(cmd *cobra.Command) error {
	flagSet := cmd.Flags().Changed("log-level")

	level := o.logLevel
	var loadErr error
	if !flagSet {
		s, err := o.settings(cmd)
		if err != nil {
			loadErr = err
		} else {
			level = s.LogLevel
		}
	}

	if err := logging.Initialize(level); err != nil {
		if flagSet {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		return fmt.Errorf("invalid %s: %w", logging.LogLevelEnvVar, err)
	}
	if loadErr != nil {
		logging.Warn("Settings file not loaded", zap.Error(loadErr))
	}
	return nil
}

// settings resolves the effective settings: flag > config file > default.
func (o *globalOptions) settings(cmd *cobra.Command) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if o.configPath != "" {
		s, err = config.LoadFile(o.configPath)
	} else {
		s, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		s.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("workers") {
		if o.workers < 0 {
			return nil, fmt.Errorf("--workers must be >= 0, got %d", o.workers)
		}
		s.Workers = o.workers
	}
	return s, nil
}

func effectiveWorkers(s *config.Settings) int {
	if s.Workers == 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// loadTrace reads and classifies path ("-" for stdin), logging the outcome.
func loadTrace(cmd *cobra.Command, path string, workers int) (*trace.Result, error) {
	var (
		content string
		err     error
	)
	if path == stdinName {
		content, err = trace.ReadAll(cmd.InOrStdin(), "<stdin>")
	} else {
		content, err = trace.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	logging.LogFileLoaded(path, len(content))

	res := trace.ClassifyParallel(content, workers)

	for _, r := range res.Rejects {
		logging.LogLineRejected(r.Line, r.Err.Reason.String(), r.Raw)
		if r.Err.Reason == trace.ReasonPayloadHex {
			logging.LogRawBytes("Rejected payload", []byte(r.Err.Token))
		}
	}
	for _, f := range res.Frames {
		logging.LogFrame(f.Line, f.Interface, f.ID, f.Data)
	}
	logging.LogClassified(path, res.Valid, res.Invalid, res.Ignored)

	return res, nil
}

// shownError wraps an error whose failure box has already been printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }

func (e *shownError) Unwrap() error { return e.err }

// fail prints a failure box for err and returns it for a non-zero exit.
func fail(p *ui.Printer, title string, err error) error {
	tips := []string{
		"Run with --log-level debug for details",
	}
	var fileErr *trace.FileError
	if errors.As(err, &fileErr) {
		tips = fileErr.Troubleshooting()
	}
	logging.Error(title, zap.Error(err))
	p.PrintError(title, err, tips)
	return &shownError{err: err}
}

// reportError writes err to w unless a failure box already showed it.
func reportError(w io.Writer, err error) {
	var shown *shownError
	if errors.As(err, &shown) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func summaryParams(res *trace.Result) []ui.Param {
	details := report.SummaryDetails(res)
	params := make([]ui.Param, 0, len(details))
	for _, d := range details {
		params = append(params, ui.Param{Key: d[0], Value: d[1]})
	}
	return params
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

// stats

func newStatsCmd(opts *globalOptions) *cobra.Command {
	var (
		rejects bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarise valid, invalid and ignored lines",
		Long: `Classify every line of a trace and print the tallies.

Valid lines decode to a CAN frame, blank and # comment lines are ignored,
and everything else is invalid. The command fails only when the file
cannot be read.`,
		Example: `  can-tracetool stats capture.log
  can-tracetool stats capture.log --rejects
  candump -l any -f - | can-tracetool stats -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Suppress usage on execution errors (we're past argument parsing)
			cmd.SilenceUsage = true

			p := ui.NewPrinter(cmd.OutOrStdout())
			s, err := opts.settings(cmd)
			if err != nil {
				return fail(p, "Invalid settings", err)
			}
			if !cmd.Flags().Changed("rejects") {
				rejects = s.ShowRejects
			}
			workers := effectiveWorkers(s)

			if !plain {
				p.PrintHeader("Trace Statistics", "can-tracetool stats",
					ui.Param{Key: "File", Value: displayName(args[0])},
					ui.Param{Key: "Workers", Value: fmt.Sprintf("%d", workers)},
				)
			}

			res, err := loadTrace(cmd, args[0], workers)
			if err != nil {
				return fail(p, "Cannot read trace", err)
			}

			if plain {
				p.Print(report.Summary(res))
				if rejects {
					return report.WriteRejects(cmd.OutOrStdout(), res.Rejects)
				}
				return nil
			}

			if res.Invalid > 0 {
				p.PrintWarning(fmt.Sprintf("%d invalid line(s)", res.Invalid), summaryParams(res)...)
			} else {
				p.PrintSuccess("Trace classified", summaryParams(res)...)
			}
			p.PrintRatio("Valid", report.ValidRatio(res))

			if rejects && len(res.Rejects) > 0 {
				p.Newline()
				p.PrintRejects(res.Rejects)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rejects, "rejects", false, "List invalid lines after the summary")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain text output without boxes")
	return cmd
}

// frames

func newFramesCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "frames <file>",
		Short: "List decoded frames",
		Long: `Decode a trace and list its valid frames in line order.

Formats:
  log    candump log lines, "(timestamp) iface ID#DATA"
  table  aligned table
  json   array of frame records
  yaml   list of frame records`,
		Example: `  can-tracetool frames capture.log
  can-tracetool frames capture.log --format table --limit 20
  can-tracetool frames capture.log --format json > frames.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			p := ui.NewPrinter(cmd.ErrOrStderr())
			s, err := opts.settings(cmd)
			if err != nil {
				return fail(p, "Invalid settings", err)
			}
			if !cmd.Flags().Changed("format") {
				format = s.Format
			}
			if !cmd.Flags().Changed("limit") {
				limit = s.Limit
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0, got %d", limit)
			}

			res, err := loadTrace(cmd, args[0], effectiveWorkers(s))
			if err != nil {
				return fail(p, "Cannot read trace", err)
			}

			return report.WriteFrames(cmd.OutOrStdout(), report.Limit(res.Frames, limit), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatLog), "Output format (log, table, json, yaml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum frames to list (0 = all)")
	return cmd
}

// check

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "List every invalid line with its reason",
		Long: `Classify a trace and list each invalid line with its line number and
the reason it was rejected. Exits non-zero when any line is invalid, so it
can gate captures in scripts.`,
		Example: `  can-tracetool check capture.log
  can-tracetool check capture.log --plain | grep "odd length"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			p := ui.NewPrinter(cmd.OutOrStdout())
			s, err := opts.settings(cmd)
			if err != nil {
				return fail(p, "Invalid settings", err)
			}

			if !plain {
				p.PrintHeader("Trace Check", "can-tracetool check",
					ui.Param{Key: "File", Value: displayName(args[0])},
				)
			}

			res, err := loadTrace(cmd, args[0], effectiveWorkers(s))
			if err != nil {
				return fail(p, "Cannot read trace", err)
			}

			if plain {
				if err := report.WriteRejects(cmd.OutOrStdout(), res.Rejects); err != nil {
					return err
				}
			} else if res.Invalid == 0 {
				p.PrintSuccess("No invalid lines", summaryParams(res)...)
			} else {
				p.PrintRejects(res.Rejects)
				p.Newline()
				p.PrintWarning(fmt.Sprintf("%d invalid line(s)", res.Invalid), summaryParams(res)...)
			}

			if res.Invalid > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidLines, res.Invalid, res.Total())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, `Plain "line N: reason: raw" output`)
	return cmd
}

// view

func newViewCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Browse decoded frames interactively",
		Long: `Open a scrollable table of decoded frames. The selected frame's raw line
and printable payload are shown below the table. Press q to quit.`,
		Example: `  can-tracetool view capture.log`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			p := ui.NewPrinter(cmd.OutOrStdout())
			if args[0] == stdinName {
				return errors.New("view cannot read from stdin; pass a file")
			}
			if !ui.IsTerminal() {
				return errors.New("view needs an interactive terminal; use 'frames --format table' instead")
			}

			s, err := opts.settings(cmd)
			if err != nil {
				return fail(p, "Invalid settings", err)
			}
			res, err := loadTrace(cmd, args[0], effectiveWorkers(s))
			if err != nil {
				return fail(p, "Cannot read trace", err)
			}

			title := fmt.Sprintf("%s  %d valid  %d invalid  %d ignored",
				args[0], res.Valid, res.Invalid, res.Ignored)
			return ui.RunBrowser(title, res.Frames)
		},
	}
}

// config

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
		Long: `Show or create the settings file.

Settings provide defaults for command flags; a flag given on the command
line always wins. The file is YAML unless its name ends in .toml.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.resolveConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true
				s, err := opts.settings(cmd)
				if err != nil {
					return err
				}
				out, err := s.Marshal()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			},
		},
		newConfigInitCmd(opts),
	)

	return cmd
}

func newConfigInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			p := ui.NewPrinter(cmd.OutOrStdout())
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				ok := p.Confirm(cmd.InOrStdin(), "Settings file exists",
					[]string{path, "Its contents will be replaced with the defaults"},
					"Overwrite?")
				if !ok {
					return nil
				}
			}

			if err := config.NewSettings().SaveTo(path); err != nil {
				return fail(p, "Cannot write settings", err)
			}
			logging.Info("Settings file written", zap.String("path", path))
			p.PrintSuccess("Settings written", ui.Param{Key: "Path", Value: path})
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file without asking")
	return cmd
}

func (o *globalOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.GetConfigPath()
}
