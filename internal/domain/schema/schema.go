package schema

import "sort"

// Kind is the expected shape of a field value
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindDate    Kind = "date"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindList    Kind = "list"
)

// Field describes one property. Objects carry Properties (nil means any
// shape is accepted), lists carry Items.
type Field struct {
	Kind       Kind
	Properties map[string]Field
	Items      *Field
	Enum       []string
}

// Schema describes one entity kind
type Schema struct {
	Name       string
	Required   []string
	Properties map[string]Field
}

// Lookup resolves a dotted path ("location.province") through nested
// object properties.
func (s Schema) Lookup(path []string) (Field, bool) {
	props := s.Properties
	var field Field
	for i, key := range path {
		f, ok := props[key]
		if !ok {
			return Field{}, false
		}
		field = f
		if i < len(path)-1 {
			if f.Kind != KindObject {
				return Field{}, false
			}
			if f.Properties == nil {
				// free form object, anything below is accepted
				return Field{Kind: ""}, true
			}
			props = f.Properties
		}
	}
	return field, true
}

// Registry is the read-only set of entity schemas, built once at startup.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry builds a registry with the given schemas.
func NewRegistry(schemas ...Schema) *Registry {
	r := &Registry{schemas: make(map[string]Schema, len(schemas))}
	for _, s := range schemas {
		r.schemas[s.Name] = s
	}
	return r
}

// NewDefaultRegistry returns the registry of all stored entity kinds.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		UserSchema(),
		UniversitySchema(),
		ProgramSchema(),
		ApplicationSchema(),
		ScrapeRequestSchema(),
	)
}

// Schema returns the schema registered under name
func (r *Registry) Schema(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names lists the registered entity kinds in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func str() Field { return Field{Kind: KindString} }
func num() Field { return Field{Kind: KindNumber} }
func date() Field { return Field{Kind: KindDate} }
func boolean() Field { return Field{Kind: KindBoolean} }
func object(props map[string]Field) Field { return Field{Kind: KindObject, Properties: props} }
func list(items Field) Field { return Field{Kind: KindList, Items: &items} }
func enum(values ...string) Field { return Field{Kind: KindString, Enum: values} }
