package output

import (
	"encoding/csv"
	"io"
)

// CSVFormatter writes every declared property, header row first.
type CSVFormatter struct{}

// Format returns FormatCSV
func (f *CSVFormatter) Format() Format {
	return FormatCSV
}

// Render writes the rows as CSV
func (f *CSVFormatter) Render(w io.Writer, result *Result) error {
	props := result.Schema.Properties

	cw := csv.NewWriter(w)
	header := make([]string, len(props))
	for i, p := range props {
		header[i] = p.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range result.Rows {
		record := make([]string, len(props))
		for i, p := range props {
			record[i] = cell(p, row, "")
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
