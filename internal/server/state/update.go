package state

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
)

// updateMaxRetries bounds how often a conflicted write is replayed before
// the conflict is surfaced to the caller.
const updateMaxRetries = 3

const updateBackoff = 200 * time.Millisecond

// Mutation transforms the loaded document into the document to store. It
// receives nil when the database has never been written and must be safe to
// re-run: on a version conflict the document is re-fetched and the mutation
// applied again.
type Mutation func(doc *models.Document) (*models.Document, error)

// Update runs one load → mutate → conditional-save cycle against the
// repository, retrying the whole cycle on version conflicts up to
// updateMaxRetries times. Any other error aborts immediately. The stored
// document is returned on success.
func Update(ctx context.Context, repo Repository, message string, fn Mutation) (*models.Document, error) {
	var result *models.Document

	backoff := retry.WithMaxRetries(updateMaxRetries, retry.NewConstant(updateBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		doc, sha, err := repo.Load(ctx)
		if err != nil {
			return err
		}

		next, err := fn(doc)
		if err != nil {
			return err
		}

		if _, err := repo.Save(ctx, next, sha, message); err != nil {
			if errors.Is(err, common.ErrVersionConflict) {
				return retry.RetryableError(err)
			}
			return err
		}

		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
