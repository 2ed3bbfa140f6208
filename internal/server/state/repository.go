// Package state is the access layer for the single persisted state document.
// It decodes the stored JSON into models.Document and writes it back under
// the store's compare-and-swap version token.
package state

import (
	"context"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
)

// Repository loads and conditionally saves the state document.
//
// Load returns (nil, "", nil) when the document has never been written: an
// uninitialized database is a valid state, not an error. It returns
// (nil, sha, nil) when the stored file exists but is empty. Corrupt stored
// JSON and transport failures are returned as errors, never as a defaulted
// document.
//
// Save writes the whole document. A non-empty sha makes the write
// conditional on that revision; common.ErrVersionConflict signals that the
// remote moved since the sha was read. An empty sha performs the first-ever
// write. On success the new sha is returned. Save never retries.
type Repository interface {
	Load(ctx context.Context) (*models.Document, string, error)
	Save(ctx context.Context, doc *models.Document, sha, message string) (string, error)
}
