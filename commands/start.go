package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/frame"
	"github.com/tallyhq/tally/internal/data/storage"
	"github.com/tallyhq/tally/internal/util"
)

var startTags []string

var startCmd = &cobra.Command{
	Use:   "start [project]",
	Short: "Track new or existing project",
	Long:  "Track new or existing project. Without a project argument, start behaves like restart.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringSliceVar(&startTags, "tag", nil,
		"Tag the new frame (repeatable)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return restartFrame(cmd, store, repo)
	}

	f, err := store.Start(args[0], startTags)
	if err != nil {
		return startHint(err)
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Started frame " + f.ID + " for project " + f.Project)
	fmt.Fprintf(cmd.OutOrStdout(), "Started tracking project %s at %s\n",
		f.Project, util.FormatTime(f.Start, clk.Location()))
	return nil
}

// restartFrame is shared by `restart` and the bare `start`.
func restartFrame(cmd *cobra.Command, store *frame.Store, repo *storage.Repository) error {
	f, err := store.Restart()
	if err != nil {
		return startHint(err)
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Restarted project " + f.Project)
	fmt.Fprintf(cmd.OutOrStdout(), "Tracking last running project: %s\n", f.Project)
	return nil
}

// startHint decorates the already-running failure with the way out.
func startHint(err error) error {
	if errors.Is(err, frame.ErrAlreadyRunning) {
		return fmt.Errorf("%w\nTry stopping your current project with 'tally stop' first", err)
	}
	return err
}
