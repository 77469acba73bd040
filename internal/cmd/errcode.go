package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storcli-exporter/pkg/storcli"
)

func newErrcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errcode [code|description]",
		Short: "Look up storcli error codes",
		Long: `Look up a storcli error code by number or by its exact description.

Without an argument the whole table is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runErrcode,
	}
}

func runErrcode(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 0 {
		fmt.Fprintln(w, "CODE\tDESCRIPTION")
		for _, e := range storcli.ErrorCodes() {
			fmt.Fprintf(w, "%d\t%s\n", e.Code, e.Description())
		}
		return nil
	}

	var entry storcli.ErrorCode
	if code, err := strconv.Atoi(args[0]); err == nil {
		entry = storcli.DescribeErrorCode(code)
	} else {
		entry = storcli.LookupErrorCode(args[0])
	}
	if entry.IsInvalid() && args[0] != strconv.Itoa(storcli.CodeInvalidStatus) {
		return fmt.Errorf("unknown error code %q", args[0])
	}

	fmt.Fprintf(w, "Code:\t%d\n", entry.Code)
	if entry.ShortDescription != "" {
		fmt.Fprintf(w, "Short:\t%s\n", entry.ShortDescription)
	}
	fmt.Fprintf(w, "Detail:\t%s\n", entry.DetailedDescription)
	return nil
}
