package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/query"
	"github.com/tallyhq/tally/internal/presentation/formatter"
)

var logOutput string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Display time intervals across all projects",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logOutput, "output", "o", "table",
		"Output format (table, json)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	store, _, err := loadStore()
	if err != nil {
		return err
	}

	f, err := formatter.New(logOutput, cmd.OutOrStdout(), clk.Location())
	if err != nil {
		return err
	}

	days := query.LogByDay(store.Frames(), clk.Now(), clk.Location())
	return f.FormatLog(formatter.LogData{Days: days})
}
