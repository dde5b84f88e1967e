// Package printer renders task lists, single-task detail, JSON, and
// informational/warning lines to the terminal. It is the only component
// that knows about column layout, resolving report definitions loaded by
// internal/config against the narrow field projection internal/task
// exposes (no reflection, per the field-oriented design in SPEC_FULL.md).
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Nelyah/bee/internal/config"
	"github.com/Nelyah/bee/internal/task"
)

// defaultColumns/defaultColumnNames back a report name that isn't found in
// the loaded configuration, so a typo'd report name degrades gracefully
// rather than failing the whole command.
var (
	defaultColumns     = []string{"id", "date_created", "summary", "tags", "urgency"}
	defaultColumnNames = []string{"ID", "Created", "Summary", "Tags", "Urgency"}
)

// Printer implements action.Printer against plain writers, using
// text/tabwriter for aligned columns.
type Printer struct {
	Out           io.Writer
	Err           io.Writer
	Reports       map[string]config.ReportConfig
	DefaultReport string
}

// New builds a Printer from a loaded configuration.
func New(cfg config.Config, out, err io.Writer) *Printer {
	return &Printer{
		Out:           out,
		Err:           err,
		Reports:       cfg.Reports,
		DefaultReport: cfg.DefaultReport,
	}
}

func (p *Printer) resolveReport(name string) config.ReportConfig {
	if name == "" {
		name = p.DefaultReport
	}
	if r, ok := p.Reports[name]; ok {
		return r
	}
	return config.ReportConfig{Columns: defaultColumns, ColumnNames: defaultColumnNames}
}

// PrintTaskList renders tasks as a column-aligned table using the named
// report's column configuration.
func (p *Printer) PrintTaskList(report string, tasks []*task.Task) error {
	r := p.resolveReport(report)
	columns := r.Columns
	if len(columns) == 0 {
		columns = defaultColumns
	}
	names := r.ColumnNames
	if len(names) != len(columns) {
		names = columns
	}

	w := tabwriter.NewWriter(p.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, joinTab(names))
	for _, t := range tasks {
		cells := make([]string, len(columns))
		for i, col := range columns {
			v, ok := task.Field(t, col)
			if ok {
				cells[i] = v.Text
			}
		}
		fmt.Fprintln(w, joinTab(cells))
	}
	return w.Flush()
}

func joinTab(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "\t"
		}
		out += c
	}
	return out
}

// infoFields is the fixed field set PrintTaskInfo renders, in order.
var infoFields = []struct {
	name, label string
}{
	{"uuid", "UUID"},
	{"id", "ID"},
	{"status", "Status"},
	{"summary", "Summary"},
	{"project", "Project"},
	{"tags", "Tags"},
	{"urgency", "Urgency"},
	{"date_created", "Created"},
	{"date_due", "Due"},
	{"date_completed", "Completed"},
}

// PrintTaskInfo renders every fixed field of a single task as a two-column
// key/value table.
func (p *Printer) PrintTaskInfo(t *task.Task) error {
	w := tabwriter.NewWriter(p.Out, 0, 4, 2, ' ', 0)
	for _, f := range infoFields {
		v, ok := task.Field(t, f.name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", f.label, v.Text)
	}
	for _, a := range t.Annotations {
		fmt.Fprintf(w, "Annotation\t%s (%s)\n", a.Value, a.Time.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// PrintJSON renders tasks as an indented JSON array, used by the export
// verb.
func (p *Printer) PrintJSON(tasks []*task.Task) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// PrintMessage writes an informational line (e.g. "no matching tasks", a
// dense id report) to the output stream.
func (p *Printer) PrintMessage(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// PrintWarning writes a non-fatal warning (e.g. a skipped transition) to
// the error stream, so it doesn't interleave with PrintJSON/export output.
func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintf(p.Err, "warning: %s\n", msg)
}
