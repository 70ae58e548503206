package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/tallyhq/tally/internal/util"
)

// TableFormatter renders plain aligned text. Column widths follow the
// display width of the content (project names may contain wide runes),
// and long project names are truncated to the terminal width.
type TableFormatter struct {
	w   io.Writer
	loc *time.Location
}

func NewTableFormatter(w io.Writer, loc *time.Location) *TableFormatter {
	return &TableFormatter{w: w, loc: loc}
}

func (f *TableFormatter) FormatReport(data ReportData) error {
	fmt.Fprintf(f.w, "%s -> %s\n",
		util.FormatDay(data.From, f.loc),
		util.FormatDay(data.To, f.loc))

	maxProject := 0
	maxDuration := 0
	for _, t := range data.Totals {
		maxProject = maxInt(maxProject, displayWidth(t.Project))
		maxDuration = maxInt(maxDuration, len(util.FormatDuration(t.Total)))
	}

	for _, t := range data.Totals {
		fmt.Fprintf(f.w, "%s %s\n",
			padRight(t.Project, maxProject),
			padLeft(util.FormatDuration(t.Total), maxDuration))
	}
	return nil
}

func (f *TableFormatter) FormatLog(data LogData) error {
	projectWidth := maxProjectWidth()

	for _, day := range data.Days {
		fmt.Fprintf(f.w, "%s (%s)\n",
			util.FormatDay(day.Day, f.loc),
			util.FormatDuration(day.Total))

		for _, lf := range day.Frames {
			end := "present"
			if lf.End != nil {
				end = util.FormatTime(*lf.End, f.loc)
			}
			project := runewidth.Truncate(lf.Project, projectWidth, "…")
			line := fmt.Sprintf("    %s to %s %s %s",
				util.FormatTime(lf.Start, f.loc),
				end,
				padLeft(util.FormatDuration(lf.Elapsed), 11),
				project)
			if len(lf.Tags) > 0 {
				line += " [" + strings.Join(lf.Tags, ", ") + "]"
			}
			fmt.Fprintln(f.w, line)
		}
	}
	return nil
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := displayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// maxProjectWidth caps project names in log output to what the terminal
// can show next to the time columns.
func maxProjectWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 60 {
		termWidth = 80
	}
	return termWidth - 40
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
