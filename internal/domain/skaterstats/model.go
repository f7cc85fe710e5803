package skaterstats

import "github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"

// Line is one skater's box-score row for one game. Seq is the table-scoped
// auto-increment key assigned on append; it is also the stable tiebreak when
// duplicates for the same (GameID, PlayerID) have to be collapsed.
//
// The source box score can be delivered more than once during back-filling,
// so the table may hold duplicates; they are collapsed at aggregation time.
type Line struct {
	Seq      int64
	GameID   int64
	PlayerID int64
	TeamID   int64
	Role     homeoraway.Role

	Goals             int
	Assists           int
	Points            int
	PlusMinus         int
	PIM               int
	Hits              int
	PowerPlayGoals    int
	ShotsOnGoal       int
	BlockedShots      int
	Shifts            int
	Giveaways         int
	Takeaways         int
	FaceoffWinningPct float64
	// TOI is the clock-formatted "MM:SS" value as published. It is kept as
	// text here; the aggregation stage parses it when it needs seconds.
	TOI string
}
