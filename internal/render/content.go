package render

import "github.com/kolah/scribe/internal/model"

// ContentView is one media type of a request body or response.
type ContentView struct {
	MediaType  string
	SchemaLink string
	Type       string
	Properties []PropertyRow
	Example    *ExampleView
	Examples   []ExampleView
}

func (r *Renderer) contents(content []model.MediaTypeContent, includeReadOnly bool) []ContentView {
	views := make([]ContentView, 0, len(content))
	for _, c := range content {
		views = append(views, r.content(c, includeReadOnly))
	}
	return views
}

func (r *Renderer) content(c model.MediaTypeContent, includeReadOnly bool) ContentView {
	v := ContentView{MediaType: c.MediaType}

	s := c.Schema
	switch s.Kind() {
	case model.KindReference:
		if target, ok := r.resolver.Resolve(s.Ref); ok {
			name := s.RefName()
			v.SchemaLink = "[" + name + "](" + modelsDir + name + ".md)"
			v.Properties = r.Properties(target, includeReadOnly)
		}
	case model.KindObject:
		v.Properties = r.Properties(s, includeReadOnly)
		if len(v.Properties) == 0 {
			v.Type = r.TypeOf(s)
		}
	case model.KindUnknown:
		if s != nil {
			v.Type = r.TypeOf(s)
		}
	default:
		v.Type = r.TypeOf(s)
		if s.Kind() == model.KindArray && s.Items.Kind() == model.KindObject {
			v.Properties = r.Properties(s.Items, includeReadOnly)
		}
	}

	if c.Example != nil {
		ex := newExample("", c.Example, c.MediaType)
		v.Example = &ex
	} else {
		for _, named := range c.Examples {
			v.Examples = append(v.Examples, newExample(named.Name, named.Value, c.MediaType))
		}
	}
	return v
}
