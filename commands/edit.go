package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/frame"
	"github.com/tallyhq/tally/internal/util"
)

var (
	editStart   string
	editEnd     string
	editProject string
	editID      string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the running frame, the last frame, or a frame by id",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editStart, "start", "", "New start (e.g. 2018-01-20 09:00)")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end (e.g. 2018-01-20 17:30)")
	editCmd.Flags().StringVar(&editProject, "project", "", "New project name")
	editCmd.Flags().StringVar(&editID, "id", "", "Frame id to edit (default: running frame, else last)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editStart == "" && editEnd == "" && editProject == "" {
		return fmt.Errorf("nothing to edit: pass --start, --end, or --project")
	}

	changes := frame.Changes{}
	loc := clk.Location()
	if editStart != "" {
		t, _, err := parseWhen(editStart, loc)
		if err != nil {
			return err
		}
		changes.Start = &t
	}
	if editEnd != "" {
		t, _, err := parseWhen(editEnd, loc)
		if err != nil {
			return err
		}
		changes.End = &t
	}
	if editProject != "" {
		changes.Project = &editProject
	}

	store, repo, err := loadStore()
	if err != nil {
		return err
	}

	f, err := store.Edit(frame.Selector{ID: editID}, changes)
	if err != nil {
		return err
	}
	if err := repo.Save(store.Frames()); err != nil {
		return err
	}

	util.LogInfo("Edited frame " + f.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Project, describeInterval(f, clk.Now(), loc))
	return nil
}

func describeInterval(f frame.Frame, now time.Time, loc *time.Location) string {
	end := "present"
	if f.End != nil {
		end = util.FormatDateTime(*f.End, loc)
	}
	return fmt.Sprintf("%s to %s (%s)",
		util.FormatDateTime(f.Start, loc), end, util.FormatDuration(f.Duration(now)))
}
