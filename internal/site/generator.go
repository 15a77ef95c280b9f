package site

import (
	"fmt"
	"path"
	"strings"

	"github.com/kolah/scribe/internal/model"
	"github.com/kolah/scribe/internal/render"
	"github.com/kolah/scribe/internal/templates"
	"github.com/kolah/scribe/internal/warnings"
)

const (
	HomeFile     = "index.md"
	ManifestFile = "_meta.json"
	ModelsDir    = "models"
)

// Generator renders a document into the files of the output tree without
// touching the file system.
type Generator struct {
	engine   templates.Engine
	warnings *warnings.Collector
}

// Output is one generated file. Filename is slash separated and relative to
// the output directory.
type Output struct {
	Filename string
	Content  string
}

// Site is everything one document produces. Manifests must be written after
// every page.
type Site struct {
	Pages      []Output
	Manifests  []Output
	Tags       []TagDir
	Operations int
	Models     int
}

// TagDir is one operation directory. Name is the lower-cased tag, Label the
// first spelling seen.
type TagDir struct {
	Name  string
	Label string
	IDs   []string
}

func NewGenerator(engine templates.Engine, w *warnings.Collector) *Generator {
	if w == nil {
		w = warnings.New()
	}
	return &Generator{engine: engine, warnings: w}
}

func (g *Generator) Generate(spec *model.Spec) (*Site, error) {
	r := render.New(spec, g.engine, g.warnings)
	site := &Site{}

	home, err := r.Home()
	if err != nil {
		return nil, fmt.Errorf("rendering home page: %w", err)
	}
	site.Pages = append(site.Pages, Output{Filename: HomeFile, Content: home})

	tags := newTagIndex()
	written := make(map[string]string)

	for i := range spec.Operations {
		op := &spec.Operations[i]
		if !op.IsDocumented() {
			continue
		}
		id := op.ID()
		page, err := r.Operation(op)
		if err != nil {
			return nil, fmt.Errorf("rendering operation %s: %w", id, err)
		}

		owner := string(op.Method) + " " + op.Path
		for _, tag := range op.TagsOrDefault() {
			dir := tags.dir(tag)
			filename := path.Join(dir.Name, id+".md")
			if prev, ok := written[filename]; ok {
				if prev != owner {
					g.warnings.Recordf("Duplicate operation id %s in %s: %s is not written", id, dir.Name, owner)
				}
				continue
			}
			written[filename] = owner
			dir.IDs = append(dir.IDs, id)
			site.Pages = append(site.Pages, Output{Filename: filename, Content: page})
		}
		site.Operations++
	}

	for _, dir := range tags.dirs {
		manifest, err := listManifest(dir.IDs)
		if err != nil {
			return nil, fmt.Errorf("encoding %s manifest: %w", dir.Name, err)
		}
		site.Manifests = append(site.Manifests, Output{Filename: path.Join(dir.Name, ManifestFile), Content: manifest})
		site.Tags = append(site.Tags, *dir)
	}

	var names []string
	for i := range spec.Schemas {
		s := &spec.Schemas[i]
		page, err := r.Model(s)
		if err != nil {
			return nil, fmt.Errorf("rendering model %s: %w", s.Name, err)
		}
		site.Pages = append(site.Pages, Output{Filename: path.Join(ModelsDir, s.Name+".md"), Content: page})
		names = append(names, s.Name)
	}
	site.Models = len(names)

	if len(names) > 0 {
		manifest, err := listManifest(names)
		if err != nil {
			return nil, fmt.Errorf("encoding models manifest: %w", err)
		}
		site.Manifests = append(site.Manifests, Output{Filename: path.Join(ModelsDir, ManifestFile), Content: manifest})
	}

	root, err := rootManifest(site.Tags, site.Models > 0)
	if err != nil {
		return nil, fmt.Errorf("encoding root manifest: %w", err)
	}
	site.Manifests = append(site.Manifests, Output{Filename: ManifestFile, Content: root})

	return site, nil
}

// Files lists every output filename, pages first.
func (s *Site) Files() []string {
	files := make([]string, 0, len(s.Pages)+len(s.Manifests))
	for _, o := range s.Pages {
		files = append(files, o.Filename)
	}
	for _, o := range s.Manifests {
		files = append(files, o.Filename)
	}
	return files
}

type tagIndex struct {
	dirs   []*TagDir
	byName map[string]*TagDir
}

func newTagIndex() *tagIndex {
	return &tagIndex{byName: make(map[string]*TagDir)}
}

// dir returns the directory of tag. Tags differing only in case share one.
func (t *tagIndex) dir(tag string) *TagDir {
	name := strings.ToLower(tag)
	if d, ok := t.byName[name]; ok {
		return d
	}
	d := &TagDir{Name: name, Label: tag}
	t.dirs = append(t.dirs, d)
	t.byName[name] = d
	return d
}
