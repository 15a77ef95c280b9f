package site

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// writer writes outputs under root, at most limit files at a time.
type writer struct {
	root  string
	limit int
}

// writeAll creates every containing directory first, then writes the files
// concurrently and waits for all of them.
func (w *writer) writeAll(ctx context.Context, outputs []Output) error {
	dirs := make(map[string]struct{})
	for _, out := range outputs {
		dir := path.Dir(out.Filename)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := os.MkdirAll(filepath.Join(w.root, filepath.FromSlash(dir)), 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if w.limit > 0 {
		g.SetLimit(w.limit)
	}
	for _, out := range outputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(w.root, filepath.FromSlash(out.Filename))
			if err := os.WriteFile(target, []byte(out.Content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			return nil
		})
	}
	return g.Wait()
}
