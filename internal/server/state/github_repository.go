package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/storage/githubapi"
)

// GitHubRepository persists the document as one pretty-printed JSON file in
// a GitHub repository, versioned by the file's blob sha.
type GitHubRepository struct {
	client *githubapi.Client
	path   string
	logger logging.Logger
}

func NewGitHubRepository(client *githubapi.Client, path string, logger logging.Logger) *GitHubRepository {
	return &GitHubRepository{
		client: client,
		path:   path,
		logger: logger.With("module", "state"),
	}
}

func (r *GitHubRepository) Load(ctx context.Context) (*models.Document, string, error) {
	f, err := r.client.Get(ctx, r.path)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.logger.Info(ctx, "state document not found, treating as uninitialized")
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("loading state: %w", err)
	}

	content := bytes.TrimSpace(f.Content)
	if len(content) == 0 {
		r.logger.Info(ctx, "state document is empty", "sha", f.SHA)
		return nil, f.SHA, nil
	}

	var doc models.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorCorruptData, err)
	}

	return &doc, f.SHA, nil
}

func (r *GitHubRepository) Save(ctx context.Context, doc *models.Document, sha, message string) (string, error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}

	newSHA, err := r.client.Put(ctx, r.path, content, sha, message)
	if err != nil {
		r.logger.Error(ctx, "saving state failed", "error", err.Error(), "message", message)
		return "", err
	}

	return newSHA, nil
}
