package goaliestats

import "context"

// Repository is the goalie-game-stats table.
type Repository interface {
	Append(ctx context.Context, item Line) (int64, error)
	List(ctx context.Context) ([]Line, error)
}
