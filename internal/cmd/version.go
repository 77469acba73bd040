package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "storcli-exporter %s\n", build.Version)
			fmt.Fprintf(out, "  commit:     %s\n", build.Commit)
			fmt.Fprintf(out, "  built:      %s\n", build.BuildTime)
			fmt.Fprintf(out, "  built by:   %s\n", build.BuildBy)
			fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
			return nil
		},
	}
}
