package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/output"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

var (
	emitLevel string
	emitTag   string
	emitError string
)

var emitCmd = &cobra.Command{
	Use:   "emit [message...]",
	Short: "Emit a single record through the facade",
	Example: `  # Warning with a derived tag and call site
  stacklog emit --level warn "slow path"

  # Error with explicit tag and an attached error
  stacklog emit --level error --tag net --error "connection reset" "fetch failed"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := model.ParseLevel(emitLevel)
		if err != nil {
			return err
		}

		var opts []stacklog.Option
		if cmd.Flags().Changed("tag") {
			opts = append(opts, stacklog.WithTag(emitTag))
		}
		if emitError != "" {
			opts = append(opts, stacklog.WithError(errors.New(emitError)))
		}

		n := stacklog.Emit(lvl, strings.Join(args, " "), opts...)
		output.Logger.Debug("Emitted record", "level", lvl, "chars", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVarP(&emitLevel, "level", "l", "info", "Record level (debug, info, lifecycle, warn, quiet, error or D/I/L/W/Q/E)")
	emitCmd.Flags().StringVarP(&emitTag, "tag", "t", "", "Explicit tag (default: derived from the call stack)")
	emitCmd.Flags().StringVarP(&emitError, "error", "e", "", "Attach an error with this message")
}
