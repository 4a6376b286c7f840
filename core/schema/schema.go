// Package schema declares the row schemas that annotate endpoint results and
// projects upstream JSON objects onto them.
package schema

import (
	"encoding/json"
	"fmt"
)

// ValueType is the type of a property value.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeObject  ValueType = "object"
)

// Hint refines how a value should be displayed.
type Hint string

const (
	HintNone Hint = ""
	HintDate Hint = "date"
)

// Property is a single column of a row schema.
type Property struct {
	// Name is the property name in projected rows
	Name string `json:"name"`

	// Type is the value type
	Type ValueType `json:"type"`

	// FromKey is the upstream JSON key the value is read from
	FromKey string `json:"from_key"`

	// Hint is an optional display hint
	Hint Hint `json:"hint,omitempty"`

	// Object is the nested schema of an object property
	Object *ObjectSchema `json:"object,omitempty"`
}

// ObjectSchema describes one row shape.
type ObjectSchema struct {
	// Name is the table name
	Name string `json:"name"`

	// IdentityName names a single row
	IdentityName string `json:"identity_name"`

	// IDProperty is the property that identifies a row
	IDProperty string `json:"id_property"`

	// DisplayProperty is shown when the row is referenced from another row
	DisplayProperty string `json:"display_property"`

	// FeaturedProperties are shown by default in tabular views
	FeaturedProperties []string `json:"featured_properties"`

	// Properties in declaration order
	Properties []Property `json:"properties"`
}

// Property returns the property with the given name.
func (s *ObjectSchema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Validate checks that the schema is internally consistent.
func (s *ObjectSchema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	seen := make(map[string]bool, len(s.Properties))
	for _, p := range s.Properties {
		if p.Name == "" {
			return fmt.Errorf("schema %s: property with empty name", s.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("schema %s: duplicate property %q", s.Name, p.Name)
		}
		seen[p.Name] = true

		switch p.Type {
		case TypeString, TypeNumber, TypeBoolean:
		case TypeObject:
			if p.Object == nil {
				return fmt.Errorf("schema %s: object property %q has no nested schema", s.Name, p.Name)
			}
			if err := p.Object.Validate(); err != nil {
				return fmt.Errorf("schema %s: property %q: %w", s.Name, p.Name, err)
			}
		default:
			return fmt.Errorf("schema %s: property %q has unknown type %q", s.Name, p.Name, p.Type)
		}
	}

	if !seen[s.IDProperty] {
		return fmt.Errorf("schema %s: id property %q is not declared", s.Name, s.IDProperty)
	}
	if !seen[s.DisplayProperty] {
		return fmt.Errorf("schema %s: display property %q is not declared", s.Name, s.DisplayProperty)
	}
	for _, f := range s.FeaturedProperties {
		if !seen[f] {
			return fmt.Errorf("schema %s: featured property %q is not declared", s.Name, f)
		}
	}
	return nil
}

// Columns returns the id property followed by the featured properties.
func (s *ObjectSchema) Columns() []Property {
	cols := make([]Property, 0, len(s.FeaturedProperties)+1)
	if p, ok := s.Property(s.IDProperty); ok {
		cols = append(cols, p)
	}
	for _, name := range s.FeaturedProperties {
		if name == s.IDProperty {
			continue
		}
		if p, ok := s.Property(name); ok {
			cols = append(cols, p)
		}
	}
	return cols
}

// Project maps an upstream object onto the schema's property names. Keys the
// schema does not declare are dropped; declared keys missing upstream are
// left out of the row.
func (s *ObjectSchema) Project(obj map[string]any) map[string]any {
	row := make(map[string]any, len(s.Properties))
	for _, p := range s.Properties {
		v, ok := obj[p.key()]
		if !ok {
			continue
		}
		if p.Type == TypeObject && p.Object != nil {
			if nested, isObj := v.(map[string]any); isObj {
				v = p.Object.Project(nested)
			}
		}
		row[p.Name] = v
	}
	return row
}

// ProjectRows encodes rows to JSON and projects each object onto the schema.
// rows must encode to a JSON array of objects.
func (s *ObjectSchema) ProjectRows(rows any) ([]map[string]any, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode %s rows: %w", s.Name, err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", s.Name, err)
	}

	projected := make([]map[string]any, 0, len(objects))
	for _, obj := range objects {
		projected = append(projected, s.Project(obj))
	}
	return projected, nil
}

func (p Property) key() string {
	if p.FromKey != "" {
		return p.FromKey
	}
	return p.Name
}
