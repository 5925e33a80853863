package zip

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestArchiveDeduplicatesNames(t *testing.T) {
	data, err := Archive([]Asset{
		{Filename: "logo.png", Data: []byte("a")},
		{Filename: "logo.png", Data: []byte("b")},
		{Filename: "", Data: []byte("c")},
		{Filename: "../escape.txt", Data: []byte("d")},
	})
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	want := []string{"logo.png", "logo (2).png", "file-3", "escape.txt"}
	if len(zr.File) != len(want) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(want))
	}
	for i, f := range zr.File {
		if f.Name != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestArchiveEmptyInput(t *testing.T) {
	data, err := Archive(nil)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	if len(zr.File) != 0 {
		t.Fatalf("entries = %d, want 0", len(zr.File))
	}
}
