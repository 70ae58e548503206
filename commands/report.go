package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/core/query"
	"github.com/tallyhq/tally/internal/presentation/formatter"
)

var (
	reportDays   int
	reportWeeks  int
	reportMonths int
	reportYears  int
	reportFrom   string
	reportTo     string

	reportProject string
	reportTags    []string
	reportOutput  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Display aggregate time per project",
	Long: `Display aggregate time per project.

Each granularity flag may be repeated to widen the window: "-w -w" covers
the past two weeks. Without flags the report covers the current week.
Explicit --from/--to dates replace the granularity flags and cannot be
combined with them.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().CountVarP(&reportDays, "day", "d",
		"Limit report to the past day; repeat to widen")
	reportCmd.Flags().CountVarP(&reportWeeks, "week", "w",
		"Limit report to the past week; repeat to widen")
	reportCmd.Flags().CountVarP(&reportMonths, "month", "m",
		"Limit report to the past month; repeat to widen")
	reportCmd.Flags().CountVarP(&reportYears, "year", "y",
		"Limit report to the past year; repeat to widen")
	reportCmd.Flags().StringVar(&reportFrom, "from", "",
		"Date the report starts at (e.g. 2018-01-01)")
	reportCmd.Flags().StringVar(&reportTo, "to", "",
		"Last day of the report, inclusive (e.g. 2018-01-20)")
	reportCmd.Flags().StringVar(&reportProject, "project", "",
		"Only count frames of this project")
	reportCmd.Flags().StringSliceVar(&reportTags, "tag", nil,
		"Only count frames carrying one of these tags (repeatable)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "table",
		"Output format (table, json)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	spec := query.WindowSpec{
		Days:    reportDays,
		Weeks:   reportWeeks,
		Months:  reportMonths,
		Years:   reportYears,
		Project: reportProject,
		Tags:    reportTags,
	}

	loc := clk.Location()
	if reportFrom != "" {
		t, _, err := parseWhen(reportFrom, loc)
		if err != nil {
			return err
		}
		spec.From = &t
	}
	if reportTo != "" {
		t, dateOnly, err := parseWhen(reportTo, loc)
		if err != nil {
			return err
		}
		// A bare --to date means "through the end of that day"; the
		// window itself stays half-open.
		if dateOnly {
			t = t.Add(24 * time.Hour)
		}
		spec.To = &t
	}

	now := clk.Now()
	window, err := query.NewWindow(spec, now)
	if err != nil {
		return err
	}

	store, _, err := loadStore()
	if err != nil {
		return err
	}

	f, err := formatter.New(reportOutput, cmd.OutOrStdout(), loc)
	if err != nil {
		return err
	}

	totals := query.Report(store.Frames(), window, now)
	return f.FormatReport(formatter.ReportData{
		From:   window.From,
		To:     window.To,
		Totals: totals,
	})
}
