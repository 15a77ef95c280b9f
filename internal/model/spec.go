package model

type Spec struct {
	Info       Info
	Servers    []Server
	Tags       []Tag
	Paths      []Path
	Operations []Operation
	// Schemas holds components.schemas in document order.
	Schemas         []Schema
	SecuritySchemes []SecurityScheme
	// Security is the root security requirement list, flattened in order.
	Security []SecurityRequirement
}

// SchemaByName returns the component schema with the given name.
func (s *Spec) SchemaByName(name string) (*Schema, bool) {
	for i := range s.Schemas {
		if s.Schemas[i].Name == name {
			return &s.Schemas[i], true
		}
	}
	return nil, false
}

// SecuritySchemeByName returns the component security scheme with the given name.
func (s *Spec) SecuritySchemeByName(name string) (*SecurityScheme, bool) {
	for i := range s.SecuritySchemes {
		if s.SecuritySchemes[i].Name == name {
			return &s.SecuritySchemes[i], true
		}
	}
	return nil, false
}

type Info struct {
	Title       string
	Description string
	Version     string
	Contact     *Contact
}

type Contact struct {
	Name  string
	Email string
	URL   string
}

type Server struct {
	URL         string
	Description string
}

type Tag struct {
	Name        string
	Description string
}

type Path struct {
	Path       string
	Operations []Operation
}
