// Package packaging bundles edited product images into a ZIP archive for
// download or hand-off.
package packaging

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/product-compositor/internal/imaging"
	"github.com/ironsheep/product-compositor/internal/pipeline"
)

// Manifest lists what was written to an archive.
type Manifest struct {
	Entries []string `json:"entries"`
	Skipped []string `json:"skipped,omitempty"`
}

// WriteZip encodes every successful result with enc and writes it to w as
// <product><ext>. Failed results are listed in Skipped. Duplicate names get a
// numeric suffix.
func WriteZip(w io.Writer, results []pipeline.Result, enc imaging.Encoder) (*Manifest, error) {
	zw := zip.NewWriter(w)
	manifest := &Manifest{}
	used := make(map[string]int)

	for _, r := range results {
		if r.Err != nil || r.Image == nil {
			manifest.Skipped = append(manifest.Skipped, r.Product)
			continue
		}

		data, err := enc.Bytes(r.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", r.Product, err)
		}

		name := entryName(r.Product, enc.Format.Ext(), used)
		fw, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		manifest.Entries = append(manifest.Entries, name)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return manifest, nil
}

// SaveZip writes the archive to path, creating parent directories.
func SaveZip(path string, results []pipeline.Result, enc imaging.Encoder) (*Manifest, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	manifest, err := WriteZip(f, results, enc)
	if err != nil {
		return nil, err
	}
	return manifest, f.Close()
}

// entryName strips any directory and extension from product.
func entryName(product, ext string, used map[string]int) string {
	base := filepath.Base(product)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "product"
	}

	used[base]++
	if n := used[base]; n > 1 {
		return fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	return base + ext
}
