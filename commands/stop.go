package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/util"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running project",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	f, err := store.Stop()
	if err != nil {
		return err
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Stopped frame " + f.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped project %s, started %s ago\n",
		f.Project, util.FormatDuration(f.End.Sub(f.Start)))
	return nil
}
