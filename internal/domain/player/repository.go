package player

import "context"

// Repository is the players roster table.
type Repository interface {
	Get(ctx context.Context, id int64) (Player, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Player, error)
}
