package skaterstats

import "context"

// Repository is the skater-game-stats table. Append assigns the next
// table-scoped sequence number and returns it.
type Repository interface {
	Append(ctx context.Context, item Line) (int64, error)
	List(ctx context.Context) ([]Line, error)
}
