package rawdata

import "time"

// Payload is one archived provider response. The archive exists so a
// contested dataset row can be traced back to the exact JSON that produced it.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	Season      string
	GameID      int64
	TeamAbbrev  string
	PlayerID    int64
	PayloadJSON string
	PayloadHash string
	FetchedAt   *time.Time
}
