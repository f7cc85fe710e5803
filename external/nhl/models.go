package nhl

import (
	"strconv"

	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type scheduleEnvelope struct {
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	ID int64 `json:"id"`
	// Season arrives numeric ("20232024" as an integer).
	Season int64 `json:"season"`
	// GameType is a pointer so an absent key can be told apart from a
	// genuine zero; the builder logs when the provider omitted it.
	GameType  *int            `json:"gameType"`
	GameState string          `json:"gameState"`
	HomeTeam  scheduleTeamRef `json:"homeTeam"`
	AwayTeam  scheduleTeamRef `json:"awayTeam"`
}

type scheduleTeamRef struct {
	ID     int64  `json:"id"`
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

func mapScheduleGame(item scheduleGame, fallbackSeason string) usecase.ExternalScheduleGame {
	out := usecase.ExternalScheduleGame{
		ID:          item.ID,
		Season:      fallbackSeason,
		StateCode:   item.GameState,
		StateAbsent: item.GameState == "",
		HomeTeamID:  item.HomeTeam.ID,
		AwayTeamID:  item.AwayTeam.ID,
		HomeScore:   item.HomeTeam.Score,
		AwayScore:   item.AwayTeam.Score,
	}
	if item.Season > 0 {
		out.Season = strconv.FormatInt(item.Season, 10)
	}
	if item.GameType != nil {
		out.TypeCode = *item.GameType
	} else {
		out.TypeAbsent = true
	}
	return out
}

type boxScoreEnvelope struct {
	ID                int64              `json:"id"`
	HomeTeam          scheduleTeamRef    `json:"homeTeam"`
	AwayTeam          scheduleTeamRef    `json:"awayTeam"`
	PlayerByGameStats *playerByGameStats `json:"playerByGameStats"`
}

type playerByGameStats struct {
	HomeTeam teamGameStats `json:"homeTeam"`
	AwayTeam teamGameStats `json:"awayTeam"`
}

type teamGameStats struct {
	Forwards []skaterGameStats `json:"forwards"`
	Defense  []skaterGameStats `json:"defense"`
	Goalies  []goalieGameStats `json:"goalies"`
}

type skaterGameStats struct {
	PlayerID          int64   `json:"playerId"`
	Goals             int     `json:"goals"`
	Assists           int     `json:"assists"`
	Points            int     `json:"points"`
	PlusMinus         int     `json:"plusMinus"`
	PIM               int     `json:"pim"`
	Hits              int     `json:"hits"`
	PowerPlayGoals    int     `json:"powerPlayGoals"`
	SOG               int     `json:"sog"`
	FaceoffWinningPct float64 `json:"faceoffWinningPctg"`
	TOI               string  `json:"toi"`
	BlockedShots      int     `json:"blockedShots"`
	Shifts            int     `json:"shifts"`
	Giveaways         int     `json:"giveaways"`
	Takeaways         int     `json:"takeaways"`
}

type goalieGameStats struct {
	PlayerID                 int64   `json:"playerId"`
	EvenStrengthShotsAgainst string  `json:"evenStrengthShotsAgainst"`
	PowerPlayShotsAgainst    string  `json:"powerPlayShotsAgainst"`
	ShorthandedShotsAgainst  string  `json:"shorthandedShotsAgainst"`
	SaveShotsAgainst         string  `json:"saveShotsAgainst"`
	SavePct                  float64 `json:"savePctg"`
	EvenStrengthGoalsAgainst int     `json:"evenStrengthGoalsAgainst"`
	PowerPlayGoalsAgainst    int     `json:"powerPlayGoalsAgainst"`
	ShorthandedGoalsAgainst  int     `json:"shorthandedGoalsAgainst"`
	PIM                      int     `json:"pim"`
	GoalsAgainst             int     `json:"goalsAgainst"`
	TOI                      string  `json:"toi"`
	Starter                  bool    `json:"starter"`
	Decision                 string  `json:"decision"`
	ShotsAgainst             int     `json:"shotsAgainst"`
	Saves                    int     `json:"saves"`
}

func mapSkaterLines(groups ...[]skaterGameStats) []usecase.ExternalSkaterLine {
	total := 0
	for _, group := range groups {
		total += len(group)
	}

	out := make([]usecase.ExternalSkaterLine, 0, total)
	for _, group := range groups {
		for _, item := range group {
			if item.PlayerID <= 0 {
				continue
			}
			out = append(out, usecase.ExternalSkaterLine{
				PlayerID:          item.PlayerID,
				Goals:             item.Goals,
				Assists:           item.Assists,
				Points:            item.Points,
				PlusMinus:         item.PlusMinus,
				PIM:               item.PIM,
				Hits:              item.Hits,
				PowerPlayGoals:    item.PowerPlayGoals,
				ShotsOnGoal:       item.SOG,
				BlockedShots:      item.BlockedShots,
				Shifts:            item.Shifts,
				Giveaways:         item.Giveaways,
				Takeaways:         item.Takeaways,
				FaceoffWinningPct: item.FaceoffWinningPct,
				TOI:               item.TOI,
			})
		}
	}
	return out
}

func mapGoalieLines(items []goalieGameStats) []usecase.ExternalGoalieLine {
	out := make([]usecase.ExternalGoalieLine, 0, len(items))
	for _, item := range items {
		if item.PlayerID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalGoalieLine{
			PlayerID:                 item.PlayerID,
			EvenStrengthShotsAgainst: item.EvenStrengthShotsAgainst,
			PowerPlayShotsAgainst:    item.PowerPlayShotsAgainst,
			ShorthandedShotsAgainst:  item.ShorthandedShotsAgainst,
			SaveShotsAgainst:         item.SaveShotsAgainst,
			SavePct:                  item.SavePct,
			EvenStrengthGoalsAgainst: item.EvenStrengthGoalsAgainst,
			PowerPlayGoalsAgainst:    item.PowerPlayGoalsAgainst,
			ShorthandedGoalsAgainst:  item.ShorthandedGoalsAgainst,
			PIM:                      item.PIM,
			GoalsAgainst:             item.GoalsAgainst,
			ShotsAgainst:             item.ShotsAgainst,
			Saves:                    item.Saves,
			TOI:                      item.TOI,
			Starter:                  item.Starter,
			Decision:                 item.Decision,
		})
	}
	return out
}

type playerLandingEnvelope struct {
	PlayerID            int64       `json:"playerId"`
	IsActive            bool        `json:"isActive"`
	FirstName           localizedTx `json:"firstName"`
	LastName            localizedTx `json:"lastName"`
	CurrentTeamID       int64       `json:"currentTeamId"`
	HeightInCentimeters int         `json:"heightInCentimeters"`
	WeightInKilograms   int         `json:"weightInKilograms"`
}

type localizedTx struct {
	Default string `json:"default"`
}
