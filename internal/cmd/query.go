package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"storcli-exporter/internal/logging"
	"storcli-exporter/internal/raid"
	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

type queryOptions struct {
	output     string
	allowed    []int
	status     bool
	drives     string
	controller int
}

// driveOutput is one drive's result of a --drives query.
type driveOutput struct {
	Drive string `json:"drive" yaml:"drive"`
	Data  any    `json:"data" yaml:"data"`
}

func newQueryCmd(v *viper.Viper) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [storcli args...]",
		Short: "Run one storcli command and print its response data",
		Long: `Run one storcli command and print the first controller's "Response Data".

The JSON flag is appended automatically. Commands that make storcli print
plain "key = value" output are shown as a mapping.

With --drives the arguments are run against every drive of a drive
expression such as "252:0-3,6", addressed as /cN/eE/sS.`,
		Example: `  storcli-exporter query show
  storcli-exporter query /c0 show all --output yaml
  storcli-exporter query /c0/cv show --allow 59
  storcli-exporter query show all --controller 0 --drives 252:0-3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, v, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().IntSliceVar(&opts.allowed, "allow", nil, "error codes to tolerate")
	cmd.Flags().BoolVar(&opts.status, "status", false, "print the command status instead of the response data")
	cmd.Flags().StringVar(&opts.drives, "drives", "", "drive expression (enclosure:slots) to run the command against")
	cmd.Flags().IntVar(&opts.controller, "controller", 0, "controller of the --drives expression")
	return cmd
}

func runQuery(cmd *cobra.Command, v *viper.Viper, opts *queryOptions, args []string) error {
	if opts.output != "json" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	cli, err := openStorCLI(cfg, newRunner(), logger)
	if err != nil {
		return err
	}

	runOpts := []storcli.RunOption{storcli.WithTimeout(cfg.CommandTimeout)}
	if len(opts.allowed) > 0 {
		runOpts = append(runOpts, storcli.AllowErrorCodes(opts.allowed...))
	}

	run := func(args []string) (any, error) {
		res, err := cli.Run(args, runOpts...)
		if err != nil {
			return nil, err
		}
		for _, code := range res.Tolerated {
			logger.Warn("command failed with tolerated code", "code", code.Code, "description", code.Description())
		}
		return selectOutput(res, opts.status), nil
	}

	if opts.drives == "" {
		out, err := run(args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), opts.output, out)
	}

	paths, err := drivePaths(opts.controller, opts.drives)
	if err != nil {
		return err
	}
	results := make([]driveOutput, 0, len(paths))
	for _, path := range paths {
		out, err := run(append([]string{path}, args...))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, driveOutput{Drive: path, Data: out})
	}
	return render(cmd.OutOrStdout(), opts.output, results)
}

// drivePaths expands a drive expression into storcli drive object paths.
func drivePaths(controller int, expr string) ([]string, error) {
	drives, err := raid.DrivesFromExpression(expr)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(drives))
	for _, d := range drives {
		encl, slot, _ := strings.Cut(d, ":")
		paths = append(paths, raid.DriveName(types.DriveInfo{Controller: controller, Enclosure: encl, Slot: slot}))
	}
	return paths, nil
}

// selectOutput picks what a query prints: the fallback mapping, the status
// block, or the response data (falling back to the status when a command
// returns no data).
func selectOutput(res *storcli.Result, status bool) any {
	if res.Fallback != nil {
		return res.Fallback
	}
	if !status {
		if data, err := res.Data(); err == nil {
			return data
		}
	}
	st, err := res.Status()
	if err != nil {
		return res.Response.Root
	}
	return st.Raw
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}
