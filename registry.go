package xsdconv

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/xsdconv/jsonschema"
)

// Rule converts a lexical value of one schema type into a Value. Rules are
// pure: no state, no I/O, same output for the same input.
type Rule func(lexical string) (Value, error)

// Entry binds a Rule to its canonical type name.
type Entry struct {
	Name string
	Kind Kind
	Rule Rule
	// Schema is the optional JSON Schema projection of the type.
	Schema *jsonschema.Schema
}

// Registry is an immutable map from canonical type name to Entry. It is
// safe for concurrent use.
type Registry struct {
	byName map[string]Entry
	names  []string
}

// RegistryBuilder collects entries. Configuration mistakes (duplicate or
// empty names, nil rules) are reported by Build.
type RegistryBuilder struct {
	entries map[string]Entry
	errs    []error
}

// NewRegistryBuilder returns an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{entries: map[string]Entry{}}
}

// Register adds rule under name.
func (b *RegistryBuilder) Register(name string, kind Kind, rule Rule) *RegistryBuilder {
	return b.RegisterEntry(Entry{Name: name, Kind: kind, Rule: rule})
}

// RegisterEntry adds a complete entry.
func (b *RegistryBuilder) RegisterEntry(e Entry) *RegistryBuilder {
	switch {
	case e.Name == "":
		b.errs = append(b.errs, errors.New("xsdconv: empty type name"))
	case strings.Contains(e.Name, ":"):
		b.errs = append(b.errs, fmt.Errorf("xsdconv: type name %q must not carry a prefix", e.Name))
	case e.Rule == nil:
		b.errs = append(b.errs, fmt.Errorf("xsdconv: nil rule for %q", e.Name))
	default:
		if _, dup := b.entries[e.Name]; dup {
			b.errs = append(b.errs, fmt.Errorf("xsdconv: duplicate type name %q", e.Name))
			return b
		}
		b.entries[e.Name] = e
	}
	return b
}

// Build freezes the collected entries.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	r := &Registry{byName: make(map[string]Entry, len(b.entries))}
	for name, e := range b.entries {
		e.Schema = e.Schema.Clone()
		r.byName[name] = e
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustBuild is Build that panics on configuration errors. Use it for
// registries assembled at program start.
func (b *RegistryBuilder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds the entry for name. A leading "prefix:" is ignored; matching
// is exact and case-sensitive.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.byName[LocalName(name)]
	return e, ok
}

// Names lists the registered canonical names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len reports the number of registered types.
func (r *Registry) Len() int { return len(r.names) }

// JSONSchema projects the type into JSON Schema. Entries without an explicit
// schema get one derived from their Kind.
func (r *Registry) JSONSchema(name string) (*jsonschema.Schema, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, &ConversionError{Kind: UnsupportedType, TypeName: name, Code: CodeUnsupportedType}
	}
	if e.Schema != nil {
		return e.Schema.Clone(), nil
	}
	return schemaForKind(e.Kind), nil
}

// LocalName strips a namespace prefix: "xs:int" -> "int". Names without a
// colon are returned as given.
func LocalName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func schemaForKind(k Kind) *jsonschema.Schema {
	switch k {
	case KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case KindDecimal, KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case KindDate:
		return &jsonschema.Schema{Type: "string", Format: "date"}
	case KindTime:
		return &jsonschema.Schema{Type: "string", Format: "time"}
	case KindDateTime:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	case KindDuration:
		return &jsonschema.Schema{Type: "string", Format: "duration"}
	case KindURI:
		return &jsonschema.Schema{Type: "string", Format: "uri-reference"}
	case KindBinary:
		return &jsonschema.Schema{Type: "string", ContentEncoding: "base64"}
	}
	return &jsonschema.Schema{Type: "string"}
}
