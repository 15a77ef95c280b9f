package render

import (
	"strings"

	"github.com/kolah/scribe/internal/model"
)

const defaultHomeTitle = "API Documentation"

type HomeView struct {
	Title       string
	Version     string
	Description string
	Contact     ContactView
	Servers     []model.Server
	Auth        []AuthRow
	Operations  []OperationRow
	Models      []ModelRow
}

type ContactView struct {
	Name  string
	Email string
	URL   string
}

type AuthRow struct {
	Name        string
	Description string
}

type OperationRow struct {
	ID      string
	Link    string
	Method  string
	Path    string
	Summary string
}

type ModelRow struct {
	Name        string
	Link        string
	Description string
}

// HomeView collects the home page: API info, contact, servers, root
// authentication and summary tables of every operation and model.
func (r *Renderer) HomeView() HomeView {
	info := r.spec.Info
	v := HomeView{
		Title:       info.Title,
		Version:     info.Version,
		Description: info.Description,
		Contact:     ContactView{Name: "N/A", Email: "N/A", URL: "N/A"},
		Servers:     r.spec.Servers,
	}
	if v.Title == "" {
		v.Title = defaultHomeTitle
	}
	if c := info.Contact; c != nil {
		v.Contact = ContactView{
			Name:  orNA(c.Name),
			Email: orNA(c.Email),
			URL:   orNA(c.URL),
		}
	}

	seen := make(map[string]struct{})
	for _, req := range r.spec.Security {
		if _, ok := seen[req.Name]; ok {
			continue
		}
		seen[req.Name] = struct{}{}
		scheme, ok := r.spec.SecuritySchemeByName(req.Name)
		if !ok {
			r.warnings.Recordf("Security scheme '%s' not found in components", req.Name)
			continue
		}
		name := scheme.ParamName
		if name == "" {
			name = authHeaderName(scheme)
		}
		v.Auth = append(v.Auth, AuthRow{Name: name, Description: OneLine(scheme.Description)})
	}

	for i := range r.spec.Operations {
		op := &r.spec.Operations[i]
		if !op.IsDocumented() {
			continue
		}
		id := op.ID()
		tag := strings.ToLower(op.TagsOrDefault()[0])
		v.Operations = append(v.Operations, OperationRow{
			ID:      id,
			Link:    "./" + tag + "/" + id + ".md",
			Method:  strings.ToUpper(string(op.Method)),
			Path:    op.Path,
			Summary: OneLine(op.Summary),
		})
	}

	for i := range r.spec.Schemas {
		s := &r.spec.Schemas[i]
		if s.Ref != "" {
			continue
		}
		v.Models = append(v.Models, ModelRow{
			Name:        s.Name,
			Link:        "./models/" + s.Name + ".md",
			Description: OneLine(s.Description),
		})
	}
	return v
}

// authHeaderName is used for schemes without an explicit parameter name.
func authHeaderName(s *model.SecurityScheme) string {
	switch s.Type {
	case model.SecurityTypeHTTP, model.SecurityTypeOAuth2, model.SecurityTypeOpenIDConnect:
		return "Authorization"
	}
	return s.Name
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Home renders index.md.
func (r *Renderer) Home() (string, error) {
	return r.execute(TemplateHome, r.HomeView())
}
