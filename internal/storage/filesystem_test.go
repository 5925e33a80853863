package storage

import (
	"context"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "uploads/abc/logo.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "uploads/abc/logo.png" {
		t.Fatalf("key = %q", key)
	}

	data, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestReadMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := store.Read(context.Background(), "uploads/nope.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	for _, key := range []string{"", ".", "../etc/passwd", "uploads/../../secret"} {
		if _, err := sanitizeKey(key); err == nil {
			t.Fatalf("sanitizeKey(%q) accepted", key)
		}
	}
	got, err := sanitizeKey("/uploads/./a/logo.png")
	if err != nil {
		t.Fatalf("sanitizeKey: %v", err)
	}
	if got != "uploads/a/logo.png" {
		t.Fatalf("cleaned key = %q", got)
	}
}
