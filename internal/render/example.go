package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.yaml.in/yaml/v4"
)

type ExampleView struct {
	Name     string
	Language string
	Body     string
}

// fenceLanguage picks the code fence info string for a media type.
func fenceLanguage(mediaType string) string {
	mt := strings.ToLower(mediaType)
	switch {
	case strings.Contains(mt, "json"):
		return "json"
	case strings.Contains(mt, "xml"):
		return "xml"
	case strings.Contains(mt, "yaml"):
		return "yaml"
	}
	return ""
}

func newExample(name string, value any, mediaType string) ExampleView {
	lang := fenceLanguage(mediaType)
	return ExampleView{
		Name:     name,
		Language: lang,
		Body:     exampleBody(value, lang),
	}
}

func exampleBody(value any, lang string) string {
	switch lang {
	case "json":
		body, err := encodeJSON(value, "  ")
		if err != nil {
			return textValue(value)
		}
		return body
	case "yaml":
		if s, ok := plain(value).(string); ok {
			return s
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return textValue(value)
		}
		return strings.TrimRight(string(out), "\n")
	}
	return textValue(value)
}

func textValue(value any) string {
	switch v := plain(value).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		body, err := encodeJSON(v, "  ")
		if err != nil {
			return ""
		}
		return body
	}
}

// encodeJSON writes value as JSON without HTML escaping. YAML mappings keep
// their document key order.
func encodeJSON(value any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(plain(value)); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// plain converts YAML nodes into values encoding/json understands, using
// orderedObject for mappings. Other values pass through unchanged.
func plain(value any) any {
	n, ok := value.(*yaml.Node)
	if !ok {
		return value
	}
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return plain(n.Content[0])
	case yaml.AliasNode:
		return plain(n.Alias)
	case yaml.MappingNode:
		obj := make(orderedObject, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			obj = append(obj, orderedField{Key: n.Content[i].Value, Value: plain(n.Content[i+1])})
		}
		return obj
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, plain(c))
		}
		return items
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
	return nil
}

type orderedField struct {
	Key   string
	Value any
}

type orderedObject []orderedField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	out := []byte{'{'}
	for i, f := range o {
		if i > 0 {
			out = append(out, ',')
		}
		buf.Reset()
		if err := enc.Encode(f.Key); err != nil {
			return nil, err
		}
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
		out = append(out, ':')

		buf.Reset()
		if err := enc.Encode(f.Value); err != nil {
			return nil, err
		}
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
	}
	return append(out, '}'), nil
}
