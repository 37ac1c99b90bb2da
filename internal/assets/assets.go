// Package assets manages the lifecycle of image blobs referenced from
// mutable records (profile images, pinned topic images, location maps).
//
// Replace follows a write-then-commit-then-delete-old ordering so a failure
// never leaves a record pointing at a deleted or unwritten blob.
package assets

import (
	"fmt"

	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/logger"
	"github.com/google/uuid"
)

type BlobStorage interface {
	Put(key string, data []byte) error
	Delete(key string) error
}

type Store struct {
	blobs BlobStorage
}

func New(blobs BlobStorage) *Store {
	return &Store{blobs: blobs}
}

// NewKey returns a collision-resistant storage key carrying the given
// extension (".png", ".jpg", ...).
func NewKey(ext string) string {
	return uuid.NewString() + ext
}

// Replace stores data under a fresh key, commits that key to the owning
// record via commit, then removes the previously referenced blob.
//
// Empty data is a no-op: the caller supplied no new image, the existing
// reference and blob stay untouched. A commit failure rolls the new blob
// back and is returned as-is; a failure to delete the old blob is logged
// and tolerated (orphaned blob, never a user-facing error).
func (s *Store) Replace(prevKey string, data []byte, ext string, commit func(newKey string) error) (string, error) {
	if len(data) == 0 {
		return prevKey, nil
	}

	newKey := NewKey(ext)
	if err := s.blobs.Put(newKey, data); err != nil {
		logger.Log.Error("blob write failed", "key", newKey, "error", err)
		return "", fmt.Errorf("%w: %s", errors.AssetWriteFailure, err)
	}

	if err := commit(newKey); err != nil {
		// Record still points at the old blob; remove the unreferenced one.
		if delErr := s.blobs.Delete(newKey); delErr != nil {
			logger.Log.Error("failed to roll back uncommitted blob", "key", newKey, "error", delErr)
		}
		return "", err
	}

	if prevKey != "" {
		if err := s.blobs.Delete(prevKey); err != nil {
			logger.Log.Warn("failed to delete replaced blob", "key", prevKey, "error", err)
		}
	}
	return newKey, nil
}

// Release removes the blob behind key, if any. Missing blobs and delete
// failures are tolerated: the owning record is already gone or about to be.
func (s *Store) Release(key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(key); err != nil {
		logger.Log.Warn("failed to release blob", "key", key, "error", err)
	}
}
