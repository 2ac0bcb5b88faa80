// Package fs writes the addon to a directory as static files, so the catalog
// can be hosted on any static file server without running toplist serve.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/toplist"
)

// CatalogPath returns the path of a catalog file relative to the addon root,
// matching the route a Stremio client requests.
// Example: movie, imdb_top → catalog/movie/imdb_top.json
func CatalogPath(typ, id string) string {
	return filepath.Join("catalog", typ, id+".json")
}

// Writer writes addon files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteAddon writes manifest.json and one catalog file per catalog the
// manifest declares. Every catalog gets the same metas.
func (w *Writer) WriteAddon(ctx context.Context, manifest *toplist.Manifest, metas []*toplist.Meta) error {
	if manifest == nil {
		return toplist.Errorf(toplist.EINVALID, "manifest required")
	}
	if metas == nil {
		metas = []*toplist.Meta{}
	}

	if err := w.writeJSON("manifest.json", manifest); err != nil {
		return err
	}

	for _, c := range manifest.Catalogs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeJSON(CatalogPath(c.Type, c.ID), map[string]any{"metas": metas}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeJSON(relPath string, v any) error {
	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}
