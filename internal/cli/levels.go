package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/output"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and whether the configured sinks keep them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderLevels())
		return nil
	},
}

func renderLevels() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Level", "Code", "Slog", "Enabled"})
	for _, lvl := range model.Levels() {
		tw.AppendRow(table.Row{
			lvl.String(),
			lvl.Code(),
			output.SlogLevel(lvl).String(),
			strconv.FormatBool(stacklog.IsLoggable(lvl)),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}
