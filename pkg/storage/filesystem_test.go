package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPutWritesAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFilesystem(dir, "https://example.com/media/")
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}

	url, err := fs.Put(context.Background(), "uploads/a.png", "image/png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "https://example.com/media/uploads/a.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "a.png"))
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected stored bytes %q", data)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir(), "https://example.com")
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}

	if _, err := fs.Put(context.Background(), "../escape.png", "image/png", bytes.NewReader(nil)); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestNewFilesystemRequiresDir(t *testing.T) {
	if _, err := NewFilesystem("  ", ""); !errors.Is(err, ErrBaseDirRequired) {
		t.Fatalf("expected ErrBaseDirRequired, got %v", err)
	}
}
