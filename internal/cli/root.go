/*
PURPOSE:
  Defines the root Cobra command for the stacklog CLI.
  Loads configuration and installs the configured sink behind the
  facade before any subcommand runs.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - The sink is installed once per invocation and released afterwards,
    restoring NullSink.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/stacklog/main.go
  - Calls: Child commands (emit, replay, levels, trace)
  - Modifies: the process-wide stacklog sink.

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.

RELATED FILES:
  - cmd/stacklog/main.go
  - internal/output/build.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/stacklog/internal/config"
	"github.com/daryltucker/stacklog/internal/output"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	// levelOverride replaces the configured minimum level when set
	levelOverride string

	// loaded is the configuration of the running command
	loaded *config.Config
	// closeSinks releases the installed sinks
	closeSinks func() error

	rootCmd = &cobra.Command{
		Use:           "stacklog",
		Short:         "Stack-aware logging facade and record tooling",
		Long:          `Emit, replay and inspect log records through the stacklog facade. Use 'emit --help' to get started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if levelOverride != "" {
				if err := cfg.Level.UnmarshalText([]byte(levelOverride)); err != nil {
					return err
				}
			}

			sink, closer, err := output.Build(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			loaded = cfg
			closeSinks = closer
			stacklog.SetSink(sink)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			stacklog.SetSink(nil)
			if closeSinks == nil {
				return nil
			}
			err := closeSinks()
			closeSinks = nil
			return err
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./stacklog.yaml)")
	rootCmd.PersistentFlags().StringVar(&levelOverride, "min-level", "", "minimum level kept by the sinks (overrides config)")
}
