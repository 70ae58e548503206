package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/frame"
	"github.com/tallyhq/tally/internal/data/storage"
	"github.com/tallyhq/tally/internal/util"
)

var (
	statusSimple bool
	statusTime   bool
	statusWatch  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display elapsed time, start time, and running project name",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusSimple, "simple", "s", false,
		"Print just the running project name, or nothing")
	statusCmd.Flags().BoolVarP(&statusTime, "time", "t", false,
		"Print just the elapsed time, or nothing")
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false,
		"Keep re-printing status whenever the store file changes")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	if !statusWatch {
		return printStatus(cmd.OutOrStdout(), store)
	}

	watcher, err := storage.NewStoreWatcher(repo.Path())
	if err != nil {
		return err
	}
	defer watcher.Close()

	printWatched(cmd.OutOrStdout(), store)
	for range watcher.Events() {
		frames, err := repo.Load()
		if err != nil {
			return err
		}
		printWatched(cmd.OutOrStdout(), frame.NewStore(frames, clk))
	}
	return nil
}

// printWatched never fails the watch loop: an idle store is a state to
// report, not an error, since tracking may resume on the next change.
func printWatched(w io.Writer, store *frame.Store) {
	if err := printStatus(w, store); errors.Is(err, frame.ErrNoRunningProject) {
		fmt.Fprintln(w, "No running project")
	}
}

func printStatus(w io.Writer, store *frame.Store) error {
	f, running := store.Current()
	if !running {
		// The simple variants stay quiet and exit zero so prompts and
		// scripts can poll without error handling.
		if statusSimple || statusTime {
			return nil
		}
		return frame.ErrNoRunningProject
	}

	elapsed := f.Duration(clk.Now())
	switch {
	case statusSimple:
		fmt.Fprintln(w, f.Project)
	case statusTime:
		fmt.Fprintln(w, util.FormatDuration(elapsed))
	default:
		fmt.Fprintf(w, "Project %s started %s ago (%s)\n",
			f.Project, util.FormatDuration(elapsed),
			util.FormatDateTime(f.Start, clk.Location()))
	}
	return nil
}
