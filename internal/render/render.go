package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kolah/scribe/internal/model"
	"github.com/kolah/scribe/internal/templates"
	"github.com/kolah/scribe/internal/warnings"
)

const (
	// modelsDir is the link prefix from a tag or models page to a model page.
	modelsDir = "../models/"

	TemplateHome      = "markdown/index.tmpl"
	TemplateOperation = "markdown/operation.tmpl"
	TemplateModel     = "markdown/model.tmpl"
)

// Renderer turns one document into Markdown pages. It holds the document,
// the discriminator index built from it and the build's warning collector;
// it is not safe for concurrent use.
type Renderer struct {
	spec     *model.Spec
	engine   templates.Engine
	resolver *Resolver
	index    DiscriminatorIndex
	warnings *warnings.Collector
}

func New(spec *model.Spec, engine templates.Engine, w *warnings.Collector) *Renderer {
	if w == nil {
		w = warnings.New()
	}
	return &Renderer{
		spec:     spec,
		engine:   engine,
		resolver: NewResolver(spec, w),
		index:    BuildDiscriminatorIndex(spec),
		warnings: w,
	}
}

func (r *Renderer) Index() DiscriminatorIndex {
	return r.index
}

// TemplateFuncs returns the functions page templates rely on.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"cell":    Cell,
		"oneLine": OneLine,
		"html":    InlineHTML,
		"lower":   strings.ToLower,
		"upper":   strings.ToUpper,
		"quote":   quoteYAML,
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}

// quoteYAML renders s as a double-quoted YAML scalar for front matter.
func quoteYAML(s string) string {
	body, err := encodeJSON(OneLine(s), "")
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return body
}

func (r *Renderer) execute(name string, data any) (string, error) {
	out, err := r.engine.Execute(name, data)
	if err != nil {
		return "", err
	}
	return Tidy(out), nil
}
