// Package fs is a local-filesystem blob store addressed by opaque keys.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Clean to prevent path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// keyPath maps a key to a path under the root. filepath.Base strips any
// separator a hostile key could smuggle in.
func (s *Storage) keyPath(key string) string {
	return filepath.Join(s.rootPath, filepath.Base(filepath.Clean(key)))
}

// Put durably writes data under key. An existing blob with the same key is
// overwritten.
func (s *Storage) Put(key string, data []byte) error {
	fullPath := s.keyPath(key)

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := dst.Write(data); err != nil {
		dst.Close()
		os.Remove(fullPath) // best effort
		return fmt.Errorf("failed to write blob data: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to sync blob data: %w", err)
	}
	return dst.Close()
}

// Read opens the blob for streaming. Caller closes.
func (s *Storage) Read(key string) (io.ReadCloser, error) {
	file, err := os.Open(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return file, nil
}

// Delete removes the blob. A missing blob is not an error.
func (s *Storage) Delete(key string) error {
	err := os.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
