package goaliestats

import "github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"

// Line is one goalie's box-score row for one game. The four situational
// shots-against fields arrive from the provider as compound "saves/shots"
// strings and are stored verbatim; the aggregation stage splits them into
// typed columns. See skaterstats.Line for the Seq and duplicate semantics.
type Line struct {
	Seq      int64
	GameID   int64
	PlayerID int64
	TeamID   int64
	Role     homeoraway.Role

	EvenStrengthShotsAgainst string
	PowerPlayShotsAgainst    string
	ShorthandedShotsAgainst  string
	SaveShotsAgainst         string

	SavePct                  float64
	EvenStrengthGoalsAgainst int
	PowerPlayGoalsAgainst    int
	ShorthandedGoalsAgainst  int
	PIM                      int
	GoalsAgainst             int
	ShotsAgainst             int
	Saves                    int

	TOI      string
	Starter  bool
	Decision string
}
