package render

import (
	"github.com/kolah/scribe/internal/model"
	"github.com/kolah/scribe/internal/warnings"
)

// Resolver looks up local "#/components/schemas/{Name}" references, one hop
// at a time. A miss is recorded as a warning and reported to the caller,
// which is expected to leave the affected section out.
type Resolver struct {
	schemas  map[string]*model.Schema
	warnings *warnings.Collector
}

func NewResolver(spec *model.Spec, w *warnings.Collector) *Resolver {
	r := &Resolver{
		schemas:  make(map[string]*model.Schema, len(spec.Schemas)),
		warnings: w,
	}
	for i := range spec.Schemas {
		r.schemas[spec.Schemas[i].Name] = &spec.Schemas[i]
	}
	return r
}

func (r *Resolver) Resolve(ref string) (*model.Schema, bool) {
	name := model.RefName(ref)
	if s, ok := r.schemas[name]; ok {
		return s, true
	}
	r.warnings.Recordf("Reference %s not found in components.schemas", name)
	return nil, false
}
