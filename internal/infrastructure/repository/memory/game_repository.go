package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[int64]game.Game
}

func NewGameRepository() *GameRepository {
	return &GameRepository{items: make(map[int64]game.Game)}
}

func (r *GameRepository) Get(_ context.Context, id int64) (game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game %d", usecase.ErrNotFound, id)
	}

	return item, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
