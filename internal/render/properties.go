package render

import (
	"strings"

	"github.com/kolah/scribe/internal/model"
)

type PropertyRow struct {
	Name        string
	Type        string
	Description string
}

// Properties builds the property table rows of an object schema, in
// declaration order. With includeReadOnly false, read-only properties are
// left out, as request bodies never carry them.
func (r *Renderer) Properties(s *model.Schema, includeReadOnly bool) []PropertyRow {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	rows := make([]PropertyRow, 0, len(s.Properties))
	for _, p := range s.Properties {
		readOnly := p.Schema != nil && p.Schema.ReadOnly
		if readOnly && !includeReadOnly {
			continue
		}

		var notes []string
		if s.IsRequired(p.Name) {
			notes = append(notes, "**Required**.")
		}
		if readOnly {
			notes = append(notes, "**Read-Only**.")
		}
		if p.Schema != nil {
			if d := InlineHTML(p.Schema.Description); d != "" {
				notes = append(notes, d)
			}
		}

		rows = append(rows, PropertyRow{
			Name:        p.Name,
			Type:        r.TypeOf(p.Schema),
			Description: strings.Join(notes, " "),
		})
	}
	return rows
}
