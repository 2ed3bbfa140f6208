package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
)

// MemoryRepository keeps the document in memory with the same
// compare-and-swap contract as the remote store. The document is stored as
// encoded JSON so every load returns an independent copy that went through
// a real encode/decode round trip.
type MemoryRepository struct {
	mu  sync.Mutex
	raw []byte
	sha string
	gen int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Load(ctx context.Context) (*models.Document, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raw == nil {
		return nil, "", nil
	}

	var doc models.Document
	if err := json.Unmarshal(m.raw, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorCorruptData, err)
	}
	return &doc, m.sha, nil
}

func (m *MemoryRepository) Save(ctx context.Context, doc *models.Document, sha, message string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sha != m.sha {
		return "", fmt.Errorf("%w: have %q, got %q", common.ErrVersionConflict, m.sha, sha)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	m.raw = raw
	m.gen++
	m.sha = fmt.Sprintf("v%d", m.gen)
	return m.sha, nil
}
