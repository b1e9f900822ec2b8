package jsonschema

import json "github.com/goccy/go-json"

// Schema is a minimal JSON Schema representation of a scalar XML Schema
// built-in type, used for export.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`

	// Numeric bounds are json.Number so 64-bit limits survive encoding.
	Minimum json.Number `json:"minimum,omitempty"`
	Maximum json.Number `json:"maximum,omitempty"`

	// String
	Pattern         string `json:"pattern,omitempty"`
	MinLength       *int   `json:"minLength,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Clone returns a deep copy so callers can modify a shared descriptor.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	if s.MinLength != nil {
		n := *s.MinLength
		c.MinLength = &n
	}
	if len(s.OneOf) > 0 {
		c.OneOf = make([]*Schema, len(s.OneOf))
		for i, o := range s.OneOf {
			c.OneOf[i] = o.Clone()
		}
	}
	return &c
}
