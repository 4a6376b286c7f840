package output

import (
	"io"

	"award-sync/core/ui"
)

// TableFormatter renders the id and featured columns as an aligned table.
type TableFormatter struct {
	NoColor bool
}

// Format returns FormatTable
func (f *TableFormatter) Format() Format {
	return FormatTable
}

// Render writes the table followed by a row count
func (f *TableFormatter) Render(w io.Writer, result *Result) error {
	out := ui.NewWriter(w, f.NoColor)

	cols := result.Schema.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}

	table := out.NewTable(headers...)
	for _, row := range result.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cell(c, row, Placeholder)
		}
		table.AddRow(cells...)
	}
	table.Render()

	out.Line("")
	noun := result.Schema.IdentityName
	if table.Len() != 1 {
		noun = result.Schema.Name
	}
	out.Info("%d %s", table.Len(), noun)
	return nil
}
