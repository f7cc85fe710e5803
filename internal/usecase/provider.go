package usecase

import (
	"context"

	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
)

// StatsProvider is the external statistics API boundary. Implementations
// return typed, validated records; every "missing key" decision is made at
// this boundary so downstream code works with known-present fields. Each
// fetch also returns the raw payloads it consumed, for the optional archive.
type StatsProvider interface {
	ClubScheduleSeason(ctx context.Context, teamAbbrev, season string) ([]ExternalScheduleGame, []rawdata.Payload, error)
	GameBoxScore(ctx context.Context, gameID int64) (ExternalBoxScore, []rawdata.Payload, error)
	PlayerLanding(ctx context.Context, playerID int64) (ExternalPlayerProfile, []rawdata.Payload, error)
}

// ExternalScheduleGame is one schedule entry. TypeAbsent/StateAbsent record
// that the provider omitted the field, so the builder can log the ambiguity
// instead of silently assuming the default.
type ExternalScheduleGame struct {
	ID          int64
	Season      string
	TypeCode    int
	TypeAbsent  bool
	StateCode   string
	StateAbsent bool
	HomeTeamID  int64
	AwayTeamID  int64
	HomeScore   *int
	AwayScore   *int
}

// ExternalBoxScore carries both rosters of one game. RosterPublished is false
// while the provider has game metadata but no per-player stats yet.
type ExternalBoxScore struct {
	GameID          int64
	HomeTeamID      int64
	AwayTeamID      int64
	RosterPublished bool
	HomeSkaters     []ExternalSkaterLine
	HomeGoalies     []ExternalGoalieLine
	AwaySkaters     []ExternalSkaterLine
	AwayGoalies     []ExternalGoalieLine
}

type ExternalSkaterLine struct {
	PlayerID          int64
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
	TOI               string
}

type ExternalGoalieLine struct {
	PlayerID                 int64
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
	TOI                      string
	Starter                  bool
	Decision                 string
}

type ExternalPlayerProfile struct {
	PlayerID      int64
	IsActive      bool
	FirstName     string
	LastName      string
	CurrentTeamID int64
	HeightCm      int
	WeightKg      int
}
