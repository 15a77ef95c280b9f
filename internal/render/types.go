package render

import (
	"fmt"
	"strings"

	"github.com/kolah/scribe/internal/model"
)

const unknownType = "Unknown"

// TypeOf returns the one-line type descriptor of a schema node as it appears
// in table cells. References link into the models directory; a reference to
// a missing schema degrades to "Unknown".
func (r *Renderer) TypeOf(s *model.Schema) string {
	switch s.Kind() {
	case model.KindReference:
		return r.modelLink(s.Ref, modelsDir)
	case model.KindArray:
		return `Array\<` + r.TypeOf(s.Items) + `\>`
	case model.KindEnum:
		return "enum: " + enumList(s.Enum)
	case model.KindComposite:
		kind, variants := s.Composition()
		parts := make([]string, 0, len(variants))
		for _, v := range variants {
			parts = append(parts, r.variantType(v))
		}
		return strings.Join(parts, kind.Separator())
	case model.KindObject, model.KindPrimitive:
		if len(s.Types) == 0 {
			return unknownType
		}
		types := make([]string, 0, len(s.Types))
		for _, t := range s.Types {
			types = append(types, capitalize(string(t)))
		}
		return strings.Join(types, " | ")
	}
	return unknownType
}

func (r *Renderer) variantType(v *model.Schema) string {
	switch v.Kind() {
	case model.KindReference, model.KindArray:
		return r.TypeOf(v)
	}
	if v == nil || len(v.Types) == 0 {
		return "unknown"
	}
	return bareType(v)
}

func bareType(s *model.Schema) string {
	types := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		types = append(types, string(t))
	}
	return strings.Join(types, " | ")
}

// modelLink renders a reference as a Markdown link to the model page under
// prefix. The label is the referenced name.
func (r *Renderer) modelLink(ref, prefix string) string {
	if _, ok := r.resolver.Resolve(ref); !ok {
		return unknownType
	}
	name := model.RefName(ref)
	return fmt.Sprintf("[%s](%s%s.md)", name, prefix, name)
}

func enumList(values []any) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "- `%s`\n", enumValue(v))
	}
	return InlineHTML(b.String())
}

func enumValue(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	body, err := encodeJSON(v, "")
	if err != nil {
		return fmt.Sprint(v)
	}
	return body
}
