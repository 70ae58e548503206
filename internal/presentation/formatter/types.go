// Package formatter renders report and log results for the terminal.
// The core returns structured values; everything string-shaped happens
// here.
package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/tallyhq/tally/internal/core/query"
)

// ReportData is a rendered report request: the resolved window bounds
// and the per-project totals inside it.
type ReportData struct {
	From   time.Time            `json:"from"`
	To     time.Time            `json:"to"`
	Totals []query.ProjectTotal `json:"totals"`
}

// LogData is the day-grouped log.
type LogData struct {
	Days []query.DayGroup `json:"days"`
}

// Formatter renders report and log results to a writer.
type Formatter interface {
	FormatReport(data ReportData) error
	FormatLog(data LogData) error
}

// New returns the formatter for the requested output format.
func New(format string, w io.Writer, loc *time.Location) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(w, loc), nil
	case "json":
		return NewJSONFormatter(w, loc), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (expected table or json)", format)
	}
}
