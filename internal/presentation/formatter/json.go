package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
)

// JSONFormatter renders results as indented JSON for scripting.
type JSONFormatter struct {
	w   io.Writer
	loc *time.Location
}

func NewJSONFormatter(w io.Writer, loc *time.Location) *JSONFormatter {
	return &JSONFormatter{w: w, loc: loc}
}

func (f *JSONFormatter) FormatReport(data ReportData) error {
	return f.encode(data)
}

func (f *JSONFormatter) FormatLog(data LogData) error {
	return f.encode(data)
}

func (f *JSONFormatter) encode(v any) error {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w, string(out))
	return err
}
