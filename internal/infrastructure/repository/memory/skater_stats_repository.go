package memory

import (
	"context"
	"sync"

	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
)

// SkaterStatsRepository is an append-only table. The sequence counter mirrors
// the database auto-increment key so dedup tiebreaks behave the same against
// either store.
type SkaterStatsRepository struct {
	mu    sync.RWMutex
	seq   int64
	items []skaterstats.Line
}

func NewSkaterStatsRepository() *SkaterStatsRepository {
	return &SkaterStatsRepository{}
}

func (r *SkaterStatsRepository) Append(_ context.Context, item skaterstats.Line) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	item.Seq = r.seq
	r.items = append(r.items, item)

	return item.Seq, nil
}

func (r *SkaterStatsRepository) List(_ context.Context) ([]skaterstats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]skaterstats.Line, len(r.items))
	copy(out, r.items)

	return out, nil
}
