package memory

import (
	"context"
	"sync"

	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
)

// RawDataRepository keys archived payloads by (entity type, entity key), so
// re-fetching the same resource replaces the stored payload instead of
// piling up copies.
type RawDataRepository struct {
	mu    sync.RWMutex
	items map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{items: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.EntityType+"|"+item.EntityKey] = item
	}

	return nil
}

func (r *RawDataRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
