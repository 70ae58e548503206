package commands

import (
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Track the last running project again",
	Args:  cobra.NoArgs,
	RunE:  runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	store, repo, err := loadStore()
	if err != nil {
		return err
	}
	return restartFrame(cmd, store, repo)
}
