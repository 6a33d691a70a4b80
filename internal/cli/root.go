// Package cli implements the xup command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/xup/internal/domain"
)

// Options configures the root command. Zero writers default to the process
// stdout and stderr.
type Options struct {
	Version   string
	Commit    string
	BuildTime string

	Stdout io.Writer
	Stderr io.Writer

	// OnServe, when set, is called with the bound address once `xup serve`
	// is accepting connections.
	OnServe func(addr net.Addr)
}

// ExitError reports a failure whose message was already written to stdout.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	opts = opts.withDefaults()

	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(opts.Stderr, "xup: %v\n", err)

	return 1
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Version == "" {
		o.Version = "dev"
	}

	return o
}

// rootFlags holds values bound to persistent and root-level flags.
type rootFlags struct {
	settingsFile string
	doctrineFile string
	logLevel     string
	logFormat    string
	metricsFile  string
	doctrine     string

	// serve
	host  string
	port  int
	watch bool
}

// NewRootCmd builds the xup command tree.
func NewRootCmd(opts Options) *cobra.Command {
	opts = opts.withDefaults()
	r := &runner{opts: opts}

	cmd := &cobra.Command{
		Use:           "xup",
		Short:         "Outputs the x-up line for a doctrine",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: r.run("xup", func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("doctrine") {
				// A broken file is reported even when nothing was asked of it.
				if _, err := s.service.Catalog(ctx); err != nil {
					return err
				}

				fmt.Fprintln(out, "No doctrine requested.")
				return nil
			}

			line, err := s.service.XUp(ctx, r.flags.doctrine)
			if err != nil {
				return notFound(out, r.flags.doctrine, err)
			}

			fmt.Fprintln(out, line)

			return nil
		}),
	}

	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	cmd.Flags().StringVarP(&r.flags.doctrine, "doctrine", "d", "", "doctrine to print the x-up line for")

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.flags.settingsFile, "config", "", "settings YAML file")
	pf.StringVarP(&r.flags.doctrineFile, "file", "f", "", "doctrine file (default xup.yaml)")
	pf.StringVar(&r.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&r.flags.logFormat, "log-format", "", "log format: json, text, pretty")
	pf.StringVar(&r.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	cmd.AddCommand(
		r.lsCmd(),
		r.showCmd(),
		r.serveCmd(),
		versionCmd(opts),
	)

	return cmd
}

// notFound prints the not-found message for lookup failures and passes any
// other error through.
func notFound(out io.Writer, name string, err error) error {
	if !domain.IsNotFound(err) && !domain.IsValidation(err) {
		return err
	}

	fmt.Fprintf(out, "Requested doctrine %s not found.\n", name)

	return &ExitError{Code: 1}
}
