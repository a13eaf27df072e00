/*
PURPOSE:
  Defines the 'replay' subcommand.
  Feeds a file (or stdin) through the facade line by line.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Replayer.Run()

ERROR HANDLING:
  - Returns error if the input cannot be opened or read.

USAGE:
  stacklog replay app.log
  printf 'WARN|net|slow\n' | stacklog replay -
*/

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/stacklog/internal/engine"
	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

var replayDefaultLevel string

var replayCmd = &cobra.Command{
	Use:   "replay <file|->",
	Short: "Replay lines from a file through the facade",
	Long: `Reads one record per line. A line of the form LEVEL|tag|message[|error]
is logged at LEVEL with the given tag (an empty tag is derived from the call
stack); any other line is logged whole at the default level. Lines longer than
3072 characters are split into segments.`,
	Example: `  # Replay a file
  stacklog replay records.txt

  # Replay stdin as warnings
  cat app.log | stacklog replay - --default-level warn`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := model.ParseLevel(replayDefaultLevel)
		if err != nil {
			return err
		}

		var src io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open replay input: %w", err)
			}
			defer f.Close()
			src = f
		}

		sum, err := engine.New(stacklog.Default(), lvl).Run(cmd.Context(), src)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lines=%d logged=%d skipped=%d chars=%d\n", sum.Lines, sum.Logged, sum.Skipped, sum.Chars)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVar(&replayDefaultLevel, "default-level", "info", "Level for lines without a LEVEL|tag| prefix")
}
