// Package zip bundles stored inquiry uploads into a single downloadable
// archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// Archive writes the assets into an in-memory zip. Empty or duplicate
// filenames are made unique so no entry silently overwrites another.
func Archive(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := map[string]int{}

	for i, asset := range assets {
		name := entryName(asset.Filename, i, seen)
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("zip: create entry %q: %w", name, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write entry %q: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func entryName(filename string, index int, seen map[string]int) string {
	name := path.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		name = fmt.Sprintf("file-%d", index+1)
	}
	seen[name]++
	if n := seen[name]; n > 1 {
		ext := path.Ext(name)
		name = fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
	}
	return name
}
