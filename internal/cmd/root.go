// Package cmd implements the storcli-exporter command line.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storcli-exporter/internal/config"
	"storcli-exporter/internal/logging"
	"storcli-exporter/pkg/storcli"
)

// BuildInfo carries the values injected at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	BuildBy   string
}

// NewRootCmd builds the command tree. Configuration flags are persistent so
// every subcommand honors them.
func NewRootCmd(build BuildInfo) *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:   "storcli-exporter",
		Short: "Prometheus exporter for Broadcom MegaRAID controllers",
		Long: `storcli-exporter wraps the Broadcom storcli utility.

It exposes controller, virtual drive, physical drive and cache vault state
as Prometheus metrics, and can run single storcli commands or look up
storcli error codes from the command line.`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := config.AddFlags(v, root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		newServeCmd(v, build),
		newQueryCmd(v),
		newErrcodeCmd(),
		newVersionCmd(build),
	)
	return root
}

// Execute runs the root command and returns any error.
func Execute(build BuildInfo) error {
	return NewRootCmd(build).Execute()
}

// Overridden in tests.
var (
	registry  = storcli.DefaultRegistry()
	newRunner = func() storcli.Runner { return storcli.NewExecRunner() }
)

// openStorCLI configures the registry's singleton mode and returns a storcli
// executor wired to runner.
func openStorCLI(cfg *config.Config, runner storcli.Runner, logger *log.Logger) (*storcli.StorCLI, error) {
	if cfg.Singleton {
		registry.EnableSingleton()
	} else {
		registry.DisableSingleton()
	}

	cli, err := registry.New(
		storcli.WithBinary(cfg.StorCLIBinary),
		storcli.WithRunner(runner),
		storcli.WithLogger(logging.Component(logger, "storcli")),
		storcli.WithCache(cfg.ResponseCache),
	)
	if err != nil {
		return nil, fmt.Errorf("locating storcli: %w", err)
	}
	return cli, nil
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
