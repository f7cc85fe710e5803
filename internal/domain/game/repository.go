package game

import "context"

// Repository is the games table. Upsert must be idempotent: re-writing the
// same game id overwrites the row in place, it never duplicates it.
type Repository interface {
	Get(ctx context.Context, id int64) (Game, error)
	Upsert(ctx context.Context, item Game) error
	List(ctx context.Context) ([]Game, error)
}
