package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/util"
)

var amendCmd = &cobra.Command{
	Use:   "amend NEW_NAME",
	Short: "Rename the running project, or the last one when idle",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmend,
}

func init() {
	rootCmd.AddCommand(amendCmd)
}

func runAmend(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	oldName := ""
	if f, ok := store.Current(); ok {
		oldName = f.Project
	} else if f, ok := store.Last(); ok {
		oldName = f.Project
	}

	f, err := store.Amend(args[0])
	if err != nil {
		return err
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Amended frame " + f.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed tracking project %s -> %s\n", oldName, f.Project)
	return nil
}
