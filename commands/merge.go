package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/merge"
	"github.com/tallyhq/tally/internal/data/storage"
	"github.com/tallyhq/tally/internal/util"
)

var mergeDryRun bool

var mergeCmd = &cobra.Command{
	Use:   "merge FILE",
	Short: "Merge frames from another store file into this one",
	Long: `Merge frames from another store file into this one.

Frames are matched by content (project, start, end), so the same work
tracked on two machines is folded together once. Frames that share a
start time but differ otherwise are both kept and reported as conflicts
for manual resolution with edit or delete.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false,
		"Report what the merge would do without writing anything")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	incoming, err := storage.LoadFile(expandPath(args[0]))
	if err != nil {
		return err
	}

	result, err := merge.Merge(store.Frames(), incoming)
	if err != nil {
		return err
	}

	if !mergeDryRun {
		if err := repo.Save(result.Frames); err != nil {
			return err
		}
	}

	util.LogInfo(fmt.Sprintf("Merge of %s: %d added, %d conflicts", args[0], result.Added, result.Conflicts))

	verb := "Merged"
	if mergeDryRun {
		verb = "Would merge"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d frames added, %d conflicts (%d frames total)\n",
		verb, args[0], result.Added, result.Conflicts, len(result.Frames))
	if result.Conflicts > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Conflicting frames were kept; resolve them with 'tally edit' or 'tally delete'.")
	}
	return nil
}
