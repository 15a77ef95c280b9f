package render

import (
	"github.com/kolah/scribe/internal/model"
)

type ModelView struct {
	Name          string
	Description   string
	Deprecated    bool
	Parents       []string
	Discriminator *DiscriminatorView
	Properties    []PropertyRow
	Variants      []VariantGroup
	Enum          []string
	Example       string
}

type DiscriminatorView struct {
	PropertyName string
	Mapping      []MappingRow
}

type MappingRow struct {
	Value string
	// Link is "[Name](Name.md)", or the bare name when the target is missing.
	Link string
}

type VariantGroup struct {
	Label string
	Items []VariantItem
}

// VariantItem is one entry of an anyOf/oneOf/allOf list. Exactly one of
// Link, Title or Type is set.
type VariantItem struct {
	Link        string
	Title       string
	Type        string
	Description string
}

// ModelView collects everything the model page of s shows. Links between
// model pages are relative to the models directory.
func (r *Renderer) ModelView(s *model.Schema) ModelView {
	v := ModelView{
		Name:        s.Name,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Parents:     r.index.Parents(s.Name),
	}

	if d := s.Discriminator; d != nil {
		dv := &DiscriminatorView{PropertyName: d.PropertyName}
		for _, m := range d.Mapping {
			link := model.RefName(m.Ref)
			if _, ok := r.resolver.Resolve(m.Ref); ok {
				link = "[" + link + "](" + link + ".md)"
			}
			dv.Mapping = append(dv.Mapping, MappingRow{Value: m.Value, Link: link})
		}
		v.Discriminator = dv
	}

	if s.Kind() == model.KindObject || len(s.Properties) > 0 {
		v.Properties = r.Properties(s, true)
	}

	for _, group := range s.Compositions() {
		vg := VariantGroup{Label: group.Kind.Label()}
		for _, variant := range group.Variants {
			if item, ok := r.variantItem(variant); ok {
				vg.Items = append(vg.Items, item)
			}
		}
		if len(vg.Items) > 0 {
			v.Variants = append(v.Variants, vg)
		}
	}

	for _, e := range s.Enum {
		v.Enum = append(v.Enum, enumValue(e))
	}

	if s.Example != nil {
		if body, err := encodeJSON(s.Example, "  "); err == nil {
			v.Example = body
		}
	}
	return v
}

func (r *Renderer) variantItem(s *model.Schema) (VariantItem, bool) {
	switch {
	case s == nil:
		return VariantItem{}, false
	case s.Ref != "":
		if _, ok := r.resolver.Resolve(s.Ref); !ok {
			return VariantItem{}, false
		}
		name := s.RefName()
		return VariantItem{Link: "[" + name + "](" + name + ".md)"}, true
	case s.Title != "":
		return VariantItem{Title: s.Title, Description: OneLine(s.Description)}, true
	case len(s.Types) > 0:
		return VariantItem{Type: bareType(s), Description: OneLine(s.Description)}, true
	}
	return VariantItem{}, false
}

// Model renders the page of one component schema.
func (r *Renderer) Model(s *model.Schema) (string, error) {
	return r.execute(TemplateModel, r.ModelView(s))
}
