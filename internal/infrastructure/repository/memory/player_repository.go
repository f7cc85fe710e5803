package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MattRWallace/NHLPredictor/internal/domain/player"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[int64]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[int64]player.Player)}
}

func (r *PlayerRepository) Get(_ context.Context, id int64) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %d", usecase.ErrNotFound, id)
	}

	return item, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
