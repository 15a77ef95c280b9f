package render

import (
	"strings"

	"github.com/kolah/scribe/internal/model"
)

type OperationView struct {
	ID          string
	Title       string
	Method      string
	Path        string
	Description string
	Deprecated  bool
	Parameters  []ParameterRow
	RequestBody *RequestBodyView
	Responses   []ResponseView
}

type ParameterRow struct {
	Name        string
	In          string
	Type        string
	Required    string
	Description string
}

type RequestBodyView struct {
	Required    bool
	Description string
	// Contents holds one entry per media type. Templates label each entry
	// only when there is more than one.
	Contents []ContentView
}

type ResponseView struct {
	Code        string
	Description string
	Contents    []ContentView
}

// OperationView collects everything the operation page shows.
func (r *Renderer) OperationView(op *model.Operation) OperationView {
	v := OperationView{
		ID:          op.ID(),
		Title:       op.Title(),
		Method:      strings.ToUpper(string(op.Method)),
		Path:        op.Path,
		Description: op.Description,
		Deprecated:  op.Deprecated,
	}

	for _, p := range op.Parameters {
		required := "No"
		if p.Required {
			required = "Yes"
		}
		typ := ""
		if p.Schema != nil {
			typ = r.TypeOf(p.Schema)
		}
		v.Parameters = append(v.Parameters, ParameterRow{
			Name:        p.Name,
			In:          string(p.In),
			Type:        typ,
			Required:    required,
			Description: InlineHTML(p.Description),
		})
	}

	if rb := op.RequestBody; rb != nil {
		v.RequestBody = &RequestBodyView{
			Required:    rb.Required,
			Description: rb.Description,
			Contents:    r.contents(rb.Content, false),
		}
	}

	for _, resp := range op.Responses {
		v.Responses = append(v.Responses, ResponseView{
			Code:        resp.StatusCode,
			Description: resp.Description,
			Contents:    r.contents(resp.Content, true),
		})
	}
	return v
}

// Operation renders the page of one operation.
func (r *Renderer) Operation(op *model.Operation) (string, error) {
	return r.execute(TemplateOperation, r.OperationView(op))
}
