package render

import "github.com/kolah/scribe/internal/model"

// DiscriminatorIndex maps a model name to the discriminated schemas that list
// it as a child. It is built once per document and never mutated afterwards.
type DiscriminatorIndex struct {
	parents map[string][]string
}

// BuildDiscriminatorIndex walks every component schema that declares a
// discriminator. Children come from the explicit mapping first, then from
// references in oneOf, anyOf and allOf. A (child, parent) pair is recorded
// once, in order of first discovery.
func BuildDiscriminatorIndex(spec *model.Spec) DiscriminatorIndex {
	idx := DiscriminatorIndex{parents: make(map[string][]string)}
	seen := make(map[[2]string]struct{})

	add := func(ref, parent string) {
		child := model.RefName(ref)
		if child == "" {
			return
		}
		key := [2]string{child, parent}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		idx.parents[child] = append(idx.parents[child], parent)
	}

	for i := range spec.Schemas {
		s := &spec.Schemas[i]
		if s.Discriminator == nil {
			continue
		}
		for _, m := range s.Discriminator.Mapping {
			add(m.Ref, s.Name)
		}
		for _, group := range [][]*model.Schema{s.OneOf, s.AnyOf, s.AllOf} {
			for _, v := range group {
				if v != nil && v.Ref != "" {
					add(v.Ref, s.Name)
				}
			}
		}
	}
	return idx
}

// Parents returns the discriminated parents of the named model.
func (i DiscriminatorIndex) Parents(name string) []string {
	p := i.parents[name]
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

func (i DiscriminatorIndex) Len() int {
	return len(i.parents)
}
