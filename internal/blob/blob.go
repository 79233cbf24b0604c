// Package blob is the opaque binary storage collaborator: put bytes, get a
// url back, delete by url. Nothing here knows what the bytes mean.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the blob storage interface consumed by the document feature.
type Store interface {
	// Put persists the bytes and returns the url they are reachable under.
	Put(ctx context.Context, data []byte) (string, error)

	// Open returns the bytes behind a url returned by Put.
	Open(ctx context.Context, url string) ([]byte, error)

	// Delete removes the blob behind a url returned by Put.
	Delete(ctx context.Context, url string) error
}

// FSStore stores blobs as files under a local directory, keyed by uuid.
type FSStore struct {
	dir     string
	baseURL string
}

// NewFSStore creates the storage directory if needed.
func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &FSStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put writes the bytes under a fresh uuid key.
func (s *FSStore) Put(_ context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the blob file behind the url.
func (s *FSStore) Delete(_ context.Context, url string) error {
	key, err := s.key(url)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Open returns the blob bytes for serving downloads.
func (s *FSStore) Open(_ context.Context, url string) ([]byte, error) {
	key, err := s.key(url)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

func (s *FSStore) key(url string) (string, error) {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	// Keys are uuids we handed out; anything with a path separator is not ours.
	if key == "" || strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("invalid blob url: %s", url)
	}
	return key, nil
}
