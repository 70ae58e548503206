// Package commands implements the tally CLI. Commands load the frame
// store, invoke one core operation, persist the result, and render the
// outcome; all tracking logic lives under internal/core.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/frame"
	"github.com/tallyhq/tally/internal/data/storage"
	"github.com/tallyhq/tally/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path and display
	dataDir  string
	timezone string

	clk util.Clock

	rootCmd = &cobra.Command{
		Use:   "tally",
		Short: "A time tracking command-line utility",
		Long: `tally records time intervals ("frames") for named projects to a local file.

Start and stop projects as you work, then inspect where the time went:

  tally start writing --tag blog     # begin tracking
  tally stop                         # finish the running frame
  tally status                       # what is running right now
  tally log                          # every frame, grouped by day
  tally report --week --week         # per-project totals, past two weeks
  tally merge laptop-frames.json     # fold in frames from another machine`,
		SilenceUsage:      true,
		PersistentPreRunE: initRuntime,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"Data directory (default: $TALLY_HOME or ~/.tally)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for display and day grouping (e.g. UTC, Europe/London)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging to the console")
}

func initRuntime(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	root := resolveDataDir()
	logFile := filepath.Join(root, "logs", "tally.log")
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logFile = ""
	}
	util.InitLogger(logLevel, logFile, debug)

	c, err := util.NewSystemClock(timezone)
	if err != nil {
		return err
	}
	clk = c
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func resolveDataDir() string {
	if dataDir != "" {
		return expandPath(dataDir)
	}
	if env := os.Getenv("TALLY_HOME"); env != "" {
		return expandPath(env)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tally")
}

func openRepository() (*storage.Repository, error) {
	return storage.NewRepository(resolveDataDir())
}

// loadStore is the read side of every command: open the repository and
// wrap its frames in a Store bound to the process clock.
func loadStore() (*frame.Store, *storage.Repository, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, nil, err
	}
	frames, err := repo.Load()
	if err != nil {
		return nil, nil, err
	}
	return frame.NewStore(frames, clk), repo, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// parseWhen parses a datetime or bare date in loc. dateOnly reports that
// the input carried no time of day.
func parseWhen(s string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if parsed, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return parsed, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("couldn't parse date '%s' (expected e.g. 2018-01-20 or 2018-01-20 15:04)", s)
}
