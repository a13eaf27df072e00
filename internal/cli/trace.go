package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/stacklog/internal/stacklog"
)

var (
	traceDepth int
	traceAll   bool
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Log the current call stack as a LIFECYCLE record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case traceAll:
			stacklog.PrintAllStackTrace()
		case cmd.Flags().Changed("depth"):
			stacklog.PrintStackTrace(traceDepth)
		case loaded != nil && loaded.TraceDepth > 0:
			stacklog.PrintStackTrace(loaded.TraceDepth)
		default:
			stacklog.PrintStackTraceDefault()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().IntVarP(&traceDepth, "depth", "d", stacklog.DefaultTraceDepth, "Number of frames to print")
	traceCmd.Flags().BoolVar(&traceAll, "all", false, "Print the whole stack")
}
