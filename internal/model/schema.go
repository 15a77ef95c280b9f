package model

import "strings"

const SchemaRefPrefix = "#/components/schemas/"

type Schema struct {
	Name        string
	Title       string
	Description string
	Types       []SchemaType
	Format      string
	ReadOnly    bool
	WriteOnly   bool
	Deprecated  bool
	Example     any

	// Object properties, in declaration order
	Properties []Property
	Required   []string

	// Array items
	Items *Schema

	// Enum values
	Enum []any

	// Composition
	AllOf []*Schema
	OneOf []*Schema
	AnyOf []*Schema

	Discriminator *Discriminator

	// Reference, left unresolved. Renderers look the target up by name.
	Ref string
}

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
	TypeNull    SchemaType = "null"
)

// Kind is the variant a schema node is rendered as. Renderers switch on it
// instead of probing individual fields.
type Kind int

const (
	KindUnknown Kind = iota
	KindReference
	KindArray
	KindEnum
	KindComposite
	KindObject
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindComposite:
		return "composite"
	case KindObject:
		return "object"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Kind classifies the schema. The order of the checks is the rendering
// priority: reference, array, enum, composite, object, primitive.
func (s *Schema) Kind() Kind {
	switch {
	case s == nil:
		return KindUnknown
	case s.Ref != "":
		return KindReference
	case s.HasType(TypeArray):
		return KindArray
	case len(s.Enum) > 0:
		return KindEnum
	case len(s.AnyOf) > 0 || len(s.OneOf) > 0 || len(s.AllOf) > 0:
		return KindComposite
	case s.HasType(TypeObject) || len(s.Properties) > 0:
		return KindObject
	case len(s.Types) > 0:
		return KindPrimitive
	default:
		return KindUnknown
	}
}

func (s *Schema) HasType(t SchemaType) bool {
	if s == nil {
		return false
	}
	for _, typ := range s.Types {
		if typ == t {
			return true
		}
	}
	return false
}

// IsRequired reports whether the named property is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// RefName returns the schema name a reference points at.
func (s *Schema) RefName() string {
	if s == nil {
		return ""
	}
	return RefName(s.Ref)
}

// Composition returns the first non-empty composition list, checked in the
// order anyOf, oneOf, allOf.
func (s *Schema) Composition() (Composition, []*Schema) {
	switch {
	case s == nil:
		return "", nil
	case len(s.AnyOf) > 0:
		return CompositionAnyOf, s.AnyOf
	case len(s.OneOf) > 0:
		return CompositionOneOf, s.OneOf
	case len(s.AllOf) > 0:
		return CompositionAllOf, s.AllOf
	}
	return "", nil
}

// Compositions returns every non-empty composition list in the order anyOf,
// oneOf, allOf.
func (s *Schema) Compositions() []CompositionGroup {
	if s == nil {
		return nil
	}
	var groups []CompositionGroup
	if len(s.AnyOf) > 0 {
		groups = append(groups, CompositionGroup{Kind: CompositionAnyOf, Variants: s.AnyOf})
	}
	if len(s.OneOf) > 0 {
		groups = append(groups, CompositionGroup{Kind: CompositionOneOf, Variants: s.OneOf})
	}
	if len(s.AllOf) > 0 {
		groups = append(groups, CompositionGroup{Kind: CompositionAllOf, Variants: s.AllOf})
	}
	return groups
}

type Composition string

const (
	CompositionAnyOf Composition = "anyOf"
	CompositionOneOf Composition = "oneOf"
	CompositionAllOf Composition = "allOf"
)

// Label is the human-readable section name, e.g. "One Of".
func (c Composition) Label() string {
	switch c {
	case CompositionAnyOf:
		return "Any Of"
	case CompositionOneOf:
		return "One Of"
	case CompositionAllOf:
		return "All Of"
	}
	return ""
}

// Separator joins variant types on a single line.
func (c Composition) Separator() string {
	if c == CompositionAllOf {
		return " & "
	}
	return " | "
}

type CompositionGroup struct {
	Kind     Composition
	Variants []*Schema
}

type Property struct {
	Name   string
	Schema *Schema
}

type Discriminator struct {
	PropertyName string
	Mapping      []DiscriminatorMapping
}

// DiscriminatorMapping is one value -> $ref entry, kept in document order.
type DiscriminatorMapping struct {
	Value string
	Ref   string
}

// RefName extracts the last path segment of a $ref,
// e.g. "#/components/schemas/User" -> "User".
func RefName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

type SecurityScheme struct {
	Name         string
	Type         SecuritySchemeType
	Description  string
	ParamName    string // the scheme's own "name" field (header/query/cookie name)
	In           string
	Scheme       string
	BearerFormat string
}

type SecuritySchemeType string

const (
	SecurityTypeAPIKey        SecuritySchemeType = "apiKey"
	SecurityTypeHTTP          SecuritySchemeType = "http"
	SecurityTypeOAuth2        SecuritySchemeType = "oauth2"
	SecurityTypeOpenIDConnect SecuritySchemeType = "openIdConnect"
	SecurityTypeMutualTLS     SecuritySchemeType = "mutualTLS"
)
