package memory

import (
	"context"
	"sync"

	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
)

// GoalieStatsRepository is the goalie twin of SkaterStatsRepository.
type GoalieStatsRepository struct {
	mu    sync.RWMutex
	seq   int64
	items []goaliestats.Line
}

func NewGoalieStatsRepository() *GoalieStatsRepository {
	return &GoalieStatsRepository{}
}

func (r *GoalieStatsRepository) Append(_ context.Context, item goaliestats.Line) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	item.Seq = r.seq
	r.items = append(r.items, item)

	return item.Seq, nil
}

func (r *GoalieStatsRepository) List(_ context.Context) ([]goaliestats.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]goaliestats.Line, len(r.items))
	copy(out, r.items)

	return out, nil
}
