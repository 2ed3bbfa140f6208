// Package broadcasts lists and publishes admin messages targeted at rank
// cohorts.
package broadcasts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/state"
)

type Service struct {
	repo   state.Repository
	logger logging.Logger
}

func NewService(repo state.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("module", "broadcasts")}
}

// List returns active broadcasts visible to the given rank (empty rank
// means no filtering), newest first.
func (s *Service) List(ctx context.Context, rank string) ([]*models.Broadcast, error) {
	doc, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, common.ErrorUninitialized
	}

	visible := make([]*models.Broadcast, 0, len(doc.Broadcasts))
	for _, b := range doc.Broadcasts {
		if b.IsActive() && b.VisibleTo(rank) {
			visible = append(visible, b)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return parseCreatedAt(visible[i].CreatedAt).After(parseCreatedAt(visible[j].CreatedAt))
	})

	return visible, nil
}

// Create publishes a broadcast. An empty target addresses all ranks.
func (s *Service) Create(ctx context.Context, title, message, target string) (*models.Broadcast, error) {
	if target == "" {
		target = models.TargetAll
	}

	broadcast := &models.Broadcast{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Target:    target,
		CreatedAt: models.Timestamp(),
	}

	_, err := state.Update(ctx, s.repo, fmt.Sprintf("Broadcast to %s", target), func(doc *models.Document) (*models.Document, error) {
		if doc == nil {
			doc = models.NewDocument()
		}
		doc.Broadcasts = append(doc.Broadcasts, broadcast)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "broadcast published", "target", target, "id", broadcast.ID)
	return broadcast, nil
}

// parseCreatedAt is forgiving: records with a missing or malformed
// created_at sort last.
func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
