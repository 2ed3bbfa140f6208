// Package keys contains admin-side activation key management.
package keys

import (
	"context"
	"fmt"
	"strings"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/state"
)

// keyPrefix brands generated tokens so they are recognizable in logs and
// support requests.
const keyPrefix = "ZEXXY"

type Service struct {
	repo   state.Repository
	logger logging.Logger
}

func NewService(repo state.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("module", "keys")}
}

// CreateParams describes a batch of keys to mint.
type CreateParams struct {
	Duration      models.KeyDuration
	Type          string
	Reusable      bool
	UniversalHWID bool
	Count         int
}

// Create mints Count fresh UNUSED keys and stores them. The document is
// created on first use, so key creation also initializes a fresh store.
func (s *Service) Create(ctx context.Context, p CreateParams) ([]*models.Key, error) {
	if p.Count <= 0 {
		p.Count = 1
	}

	var created []*models.Key

	_, err := state.Update(ctx, s.repo, fmt.Sprintf("Created %d key(s)", p.Count), func(doc *models.Document) (*models.Document, error) {
		if doc == nil {
			doc = models.NewDocument()
		}

		created = created[:0]
		for i := 0; i < p.Count; i++ {
			token, err := generateToken(doc)
			if err != nil {
				return nil, err
			}
			key := &models.Key{
				Key:           token,
				Status:        models.KeyStatusUnused,
				DurationDays:  p.Duration,
				Type:          p.Type,
				Reusable:      p.Reusable,
				UniversalHWID: p.UniversalHWID,
			}
			doc.Keys = append(doc.Keys, key)
			created = append(created, key)
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "keys created", "count", len(created), "type", p.Type)
	return created, nil
}

// generateToken returns a fresh key token unique within the document, in
// the form ZEXXY-XXXX-XXXX-XXXX-XXXX.
func generateToken(doc *models.Document) (string, error) {
	for {
		raw, err := common.MakeRandHexString(8)
		if err != nil {
			return "", err
		}
		raw = strings.ToUpper(raw)
		token := fmt.Sprintf("%s-%s-%s-%s-%s", keyPrefix, raw[0:4], raw[4:8], raw[8:12], raw[12:16])
		if doc.FindKey(token) == nil {
			return token, nil
		}
	}
}
