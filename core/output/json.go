package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes {"schema", "count", "rows"}.
type JSONFormatter struct {
	Indent string
}

type jsonDocument struct {
	Schema string           `json:"schema"`
	Count  int              `json:"count"`
	Rows   []map[string]any `json:"rows"`
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render encodes the result
func (f *JSONFormatter) Render(w io.Writer, result *Result) error {
	rows := result.Rows
	if rows == nil {
		rows = []map[string]any{}
	}

	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(jsonDocument{
		Schema: result.Schema.Name,
		Count:  len(rows),
		Rows:   rows,
	})
}
