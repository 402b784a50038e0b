package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	ErrBaseDirRequired = errors.New("storage: base directory is required")
	ErrInvalidPath     = errors.New("storage: invalid object path")
)

// Filesystem stores objects under a base directory and serves them from a
// configured base URL. Objects are never deleted.
type Filesystem struct {
	baseDir string
	baseURL string
}

// NewFilesystem builds a filesystem store rooted at baseDir. Stored objects
// resolve publicly under baseURL.
func NewFilesystem(baseDir, baseURL string) (*Filesystem, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return nil, ErrBaseDirRequired
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &Filesystem{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Put writes body under objectPath and returns the public URL.
func (f *Filesystem) Put(_ context.Context, objectPath, _ string, body io.Reader) (string, error) {
	cleaned, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(f.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("storage: create object dir: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("storage: create object: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return "", fmt.Errorf("storage: write object: %w", err)
	}

	return f.publicURL(cleaned), nil
}

func (f *Filesystem) publicURL(cleaned string) string {
	escaped := make([]string, 0, 4)
	for _, segment := range strings.Split(cleaned, "/") {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return f.baseURL + "/" + strings.Join(escaped, "/")
}

func cleanObjectPath(objectPath string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(strings.TrimSpace(objectPath), "/"))
	if cleaned == "." || cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	return cleaned, nil
}
