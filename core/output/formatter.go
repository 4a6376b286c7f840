// Package output renders schema-annotated rows for humans and machines.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"award-sync/core/schema"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable CLI table of featured columns
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatCSV is every property as comma-separated values
	FormatCSV Format = "csv"
)

// Placeholder is shown in tables for absent values.
const Placeholder = "-"

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *Result) error
}

// Result is a list of projected rows and the schema describing them.
type Result struct {
	Schema *schema.ObjectSchema
	Rows   []map[string]any
}

// NewResult projects typed rows onto s.
func NewResult(s *schema.ObjectSchema, rows any) (*Result, error) {
	projected, err := s.ProjectRows(rows)
	if err != nil {
		return nil, err
	}
	return &Result{Schema: s, Rows: projected}, nil
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding the table, json and csv formatters.
func NewRegistry(noColor bool) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&TableFormatter{NoColor: noColor})
	r.Register(&JSONFormatter{Indent: "  "})
	r.Register(&CSVFormatter{})
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format name, case-insensitively.
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(r.Formats(), ", "))
	}
	return f, nil
}

// Formats lists the registered format names
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// cell renders one property value. Nested objects are shown by their display
// property; missing values render as placeholder.
func cell(p schema.Property, row map[string]any, placeholder string) string {
	v, ok := row[p.Name]
	if !ok || v == nil {
		return placeholder
	}
	if p.Type == schema.TypeObject && p.Object != nil {
		nested, isObj := v.(map[string]any)
		if !isObj {
			return placeholder
		}
		display, _ := p.Object.Property(p.Object.DisplayProperty)
		return cell(display, nested, placeholder)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	if s == "" {
		return placeholder
	}
	return s
}
