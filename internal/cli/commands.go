package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/xup/internal/adapters/http/handlers"
	"github.com/jsamuelsen/xup/internal/domain"
)

func (r *runner) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Lists available doctrines",
		Args:  cobra.NoArgs,
		RunE: r.run("ls", func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			names, err := s.service.Names(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}

			return nil
		}),
	}
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Shows the categories and ships of a doctrine",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("show", func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			doctrine, err := s.service.Get(ctx, args[0])
			if err != nil {
				return notFound(cmd.OutOrStdout(), args[0], err)
			}

			writeDoctrine(cmd.OutOrStdout(), doctrine)

			return nil
		}),
	}
}

// writeDoctrine prints one numbered line per category followed by the x-up line.
func writeDoctrine(w io.Writer, d domain.Doctrine) {
	fmt.Fprintln(w, d.Name)

	for i, c := range d.Categories {
		ships := "(empty)"
		if len(c.Ships) > 0 {
			ships = strings.Join(c.Ships, ", ")
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, ships)
	}

	fmt.Fprintln(w, d.XUp())
}

func versionCmd(opts Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Prints build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := handlers.NewBuildInfo(opts.Version, opts.Commit, opts.BuildTime)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(out, "xup %s\n", info.Version)
			fmt.Fprintf(out, "commit: %s\n", info.Commit)
			fmt.Fprintf(out, "built:  %s\n", info.BuildTime)
			fmt.Fprintf(out, "go:     %s\n", info.GoVersion)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
