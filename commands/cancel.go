package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/util"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Stop the running project and discard its frame",
	Args:  cobra.NoArgs,
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	f, err := store.Cancel()
	if err != nil {
		return err
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Canceled frame " + f.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Canceled project %s, started %s ago\n",
		f.Project, util.FormatDuration(f.Duration(clk.Now())))
	return nil
}
