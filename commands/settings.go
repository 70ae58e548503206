package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/data/storage"
)

var (
	settingsDataDir string
	settingsClear   bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change where frame data is stored",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsDataDir, "set-data-dir", "",
		"Store frame data in this directory from now on")
	settingsCmd.Flags().BoolVar(&settingsClear, "clear", false,
		"Reset settings to defaults")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	root := resolveDataDir()

	if settingsClear {
		if err := storage.ClearSettings(root); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared settings file")
		return nil
	}

	if settingsDataDir != "" {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		frames, err := repo.Load()
		if err != nil {
			return err
		}

		target := expandPath(settingsDataDir)
		if err := storage.SaveSettings(root, storage.Settings{DataLocation: target}); err != nil {
			return err
		}

		// Re-open against the new location and carry the frames over.
		moved, err := openRepository()
		if err != nil {
			return err
		}
		if err := moved.Save(frames); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Frame data now stored in %s\n", target)
		return nil
	}

	settings, err := storage.LoadSettings(root)
	if err != nil {
		return err
	}
	location := settings.DataLocation
	if location == "" {
		location = root
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings root: %s\nData location: %s\n", root, location)
	return nil
}
