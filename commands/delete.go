package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/util"
)

var deleteCmd = &cobra.Command{
	Use:   "delete PROJECT",
	Short: "Remove all frames of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	removed := store.Delete(args[0])
	if removed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No frames for project %s\n", args[0])
		return nil
	}

	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo(fmt.Sprintf("Deleted %d frames of project %s", removed, args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s (%d frames)\n", args[0], removed)
	return nil
}
