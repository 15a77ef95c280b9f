// Package site assembles the documentation tree: it loads the OpenAPI
// document, renders every page and writes pages and manifests to the output
// directory.
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kolah/scribe/internal/config"
	"github.com/kolah/scribe/internal/loader"
	"github.com/kolah/scribe/internal/render"
	"github.com/kolah/scribe/internal/templates"
	"github.com/kolah/scribe/internal/warnings"
	embeddedtmpl "github.com/kolah/scribe/templates"
	"github.com/rs/zerolog"
)

var ErrMissingRoot = config.ErrMissingRoot

// Builder runs builds for one configuration. Builds reuse a single warning
// collector and must not run concurrently.
type Builder struct {
	config   *config.Config
	engine   templates.Engine
	log      zerolog.Logger
	warnings *warnings.Collector
	dryRun   bool
}

type Option func(*Builder)

// WithDryRun renders everything but leaves the file system untouched.
func WithDryRun(dryRun bool) Option {
	return func(b *Builder) { b.dryRun = dryRun }
}

// WithEngine replaces the template engine built from the embedded templates.
func WithEngine(engine templates.Engine) Option {
	return func(b *Builder) { b.engine = engine }
}

// Result describes a finished build.
type Result struct {
	OutputDir  string
	Files      []string
	Operations int
	Models     int
	Warnings   []string
}

func New(cfg *config.Config, log zerolog.Logger, opts ...Option) (*Builder, error) {
	if cfg == nil || cfg.Root == "" {
		return nil, ErrMissingRoot
	}

	b := &Builder{
		config:   cfg,
		log:      log,
		warnings: warnings.New(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.engine == nil {
		engine, err := templates.NewEngine(embeddedtmpl.FS, cfg.Templates.Dir, render.TemplateFuncs())
		if err != nil {
			return nil, fmt.Errorf("creating template engine: %w", err)
		}
		b.engine = engine
	}

	return b, nil
}

// Build loads the document and writes the whole tree. Loading failures are
// fatal; everything else is reported in Result.Warnings.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	b.warnings.Drain()

	outDir := b.config.OutputPath()
	result := &Result{OutputDir: outDir}

	if !b.dryRun {
		if err := b.prepare(outDir); err != nil {
			return nil, err
		}
	}

	input := b.config.InputPath()
	b.log.Info().Str("input", input).Msg("loading OpenAPI document")

	loaded, err := loader.LoadFile(input)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	for _, w := range loaded.Warnings {
		b.warnings.Record(w)
	}

	spec, err := loader.Transform(loaded)
	if err != nil {
		return nil, fmt.Errorf("transforming spec: %w", err)
	}

	b.log.Info().
		Str("version", loaded.Version).
		Str("title", spec.Info.Title).
		Int("schemas", len(spec.Schemas)).
		Int("operations", len(spec.Operations)).
		Msg("document loaded")

	site, err := NewGenerator(b.engine, b.warnings).Generate(spec)
	if err != nil {
		return nil, fmt.Errorf("generating site: %w", err)
	}

	result.Files = site.Files()
	result.Operations = site.Operations
	result.Models = site.Models

	if !b.dryRun {
		w := &writer{root: outDir, limit: b.config.Concurrency}
		if err := w.writeAll(ctx, site.Pages); err != nil {
			return nil, fmt.Errorf("writing pages: %w", err)
		}
		if err := w.writeAll(ctx, site.Manifests); err != nil {
			return nil, fmt.Errorf("writing manifests: %w", err)
		}
		for _, dir := range site.Tags {
			b.log.Debug().Str("dir", dir.Name).Int("operations", len(dir.IDs)).Msg("wrote tag directory")
		}
		if site.Models > 0 {
			b.log.Debug().Str("dir", ModelsDir).Int("models", site.Models).Msg("wrote models directory")
		}
	}

	result.Warnings = b.warnings.Drain()
	if len(result.Warnings) > 0 {
		b.log.Warn().Int("count", len(result.Warnings)).Msg("warnings summary")
		for _, msg := range result.Warnings {
			b.log.Warn().Msg(msg)
		}
	}

	b.log.Info().
		Str("out", outDir).
		Int("operations", result.Operations).
		Int("models", result.Models).
		Int("warnings", len(result.Warnings)).
		Bool("dry_run", b.dryRun).
		Dur("elapsed", time.Since(start)).
		Msg("documentation built")

	return result, nil
}

// prepare cleans the output directory when configured to and recreates it.
func (b *Builder) prepare(outDir string) error {
	if b.config.ShouldClean() {
		b.log.Info().Str("dir", outDir).Msg("cleaning output directory")
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("cleaning output directory: %w", err)
		}
		if _, err := os.Stat(outDir); err == nil || !errors.Is(err, os.ErrNotExist) {
			b.log.Warn().Str("dir", outDir).Msg("output directory still exists after clean")
		}
	}

	if err := os.MkdirAll(filepath.Clean(outDir), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
