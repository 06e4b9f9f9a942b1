package licenses

import (
	"fmt"
	"io"

	"github.com/agentstation/utc"

	"github.com/agentstation/devtasks/internal/cmd/application"
	"github.com/agentstation/devtasks/internal/cmd/emoji"
	"github.com/agentstation/devtasks/internal/cmd/output"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// Report is the outcome of a license lint.
type Report struct {
	File      string           `json:"file" yaml:"file"`
	CheckedAt utc.Time         `json:"checked_at" yaml:"checked_at"`
	UpToDate  bool             `json:"up_to_date" yaml:"up_to_date"`
	Missing   []licenses.Entry `json:"missing" yaml:"missing"`
	Extra     []licenses.Entry `json:"extra" yaml:"extra"`
}

// NewReport builds a report from a reconciliation result.
func NewReport(file string, result *licenses.Result) *Report {
	return &Report{
		File:      file,
		CheckedAt: utc.Now(),
		UpToDate:  !result.HasChanges(),
		Missing:   nonNil(result.Missing),
		Extra:     nonNil(result.Extra),
	}
}

// TableData lays the differences out as a table.
func (r *Report) TableData() output.Data {
	rows := make([][]string, 0, len(r.Missing)+len(r.Extra))
	for _, e := range r.Missing {
		rows = append(rows, []string{emoji.Added, e.Scope, e.Origin, e.License})
	}
	for _, e := range r.Extra {
		rows = append(rows, []string{emoji.Removed, e.Scope, e.Origin, e.License})
	}
	return output.Data{
		Headers: []string{"Change", "Component", "Origin", "License"},
		Rows:    rows,
	}
}

// Print writes the report in format. The table format prints one
// "+ row" or "- row" line per difference followed by a verdict.
func (r *Report) Print(w io.Writer, format output.Format) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, r)
	case output.FormatMarkdown:
		f := &output.MarkdownFormatter{Title: "License changes in " + r.File}
		return f.Format(w, r)
	}

	for _, e := range r.Missing {
		if _, err := fmt.Fprintf(w, "%s %s\n", emoji.Added, e.Key()); err != nil {
			return err
		}
	}
	for _, e := range r.Extra {
		if _, err := fmt.Fprintf(w, "%s %s\n", emoji.Removed, e.Key()); err != nil {
			return err
		}
	}

	verdict := emoji.Success + " licenses ok"
	if !r.UpToDate {
		verdict = emoji.Error + " licenses are not up-to-date"
	}
	_, err := fmt.Fprintln(w, verdict)
	return err
}

// formatOf returns the configured format; lint and generate print plain
// text unless a format was asked for.
func formatOf(app application.Application) output.Format {
	if f := app.OutputFormat(); f != "" {
		return output.Format(f)
	}
	return output.FormatTable
}

func nonNil(entries []licenses.Entry) []licenses.Entry {
	if entries == nil {
		return []licenses.Entry{}
	}
	return entries
}
