package model

import "strings"

// DefaultTag groups operations that declare no tags.
const DefaultTag = "Default"

type Operation struct {
	OperationID string
	Method      Method
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   []Response
	// HasResponses is true when the operation declared a responses object,
	// even an empty one.
	HasResponses bool
	Deprecated   bool
	Security     []SecurityRequirement
}

// ID returns the operationId, or a synthetic id derived from method and path
// when none is declared.
func (o *Operation) ID() string {
	if o.OperationID != "" {
		return o.OperationID
	}
	return SyntheticOperationID(o.Method, o.Path)
}

// SyntheticOperationID joins method and path with "_" and replaces every "/",
// "{" and "}" in the path with "_", one for one:
// GET /widgets/{id} -> GET__widgets__id_.
func SyntheticOperationID(method Method, path string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '/', '{', '}':
			return '_'
		}
		return r
	}, path)
	return strings.ToUpper(string(method)) + "_" + replaced
}

// IsDocumented reports whether the entry is a real operation rather than a
// stub; an operation needs an operationId or a responses object.
func (o *Operation) IsDocumented() bool {
	return o.OperationID != "" || o.HasResponses
}

// TagsOrDefault returns the declared tags, or DefaultTag when there are none.
func (o *Operation) TagsOrDefault() []string {
	if len(o.Tags) == 0 {
		return []string{DefaultTag}
	}
	return o.Tags
}

// Title is the page heading: summary, then operationId, then "METHOD path".
func (o *Operation) Title() string {
	if o.Summary != "" {
		return o.Summary
	}
	if o.OperationID != "" {
		return o.OperationID
	}
	return string(o.Method) + " " + o.Path
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodQuery   Method = "QUERY" // OpenAPI 3.2
)

type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

type Parameter struct {
	Name        string
	In          ParameterLocation
	Description string
	Required    bool
	Deprecated  bool
	Schema      *Schema
}

type RequestBody struct {
	Description string
	Required    bool
	Content     []MediaTypeContent
}

type MediaTypeContent struct {
	MediaType string
	Schema    *Schema
	Example   any
	Examples  []NamedExample
}

type NamedExample struct {
	Name  string
	Value any
}

type Response struct {
	StatusCode  string
	Description string
	Content     []MediaTypeContent
}

type SecurityRequirement struct {
	Name   string
	Scopes []string
}
