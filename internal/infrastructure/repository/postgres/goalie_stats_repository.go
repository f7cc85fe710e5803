package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
)

type GoalieStatsRepository struct {
	db *sqlx.DB
}

func NewGoalieStatsRepository(db *sqlx.DB) *GoalieStatsRepository {
	return &GoalieStatsRepository{db: db}
}

type goalieStatsTableModel struct {
	Seq                      int64   `db:"seq"`
	GameID                   int64   `db:"game_id"`
	PlayerID                 int64   `db:"player_id"`
	TeamID                   int64   `db:"team_id"`
	Side                     string  `db:"side"`
	EvenStrengthShotsAgainst string  `db:"even_strength_shots_against"`
	PowerPlayShotsAgainst    string  `db:"power_play_shots_against"`
	ShorthandedShotsAgainst  string  `db:"shorthanded_shots_against"`
	SaveShotsAgainst         string  `db:"save_shots_against"`
	SavePct                  float64 `db:"save_pct"`
	EvenStrengthGoalsAgainst int     `db:"even_strength_goals_against"`
	PowerPlayGoalsAgainst    int     `db:"power_play_goals_against"`
	ShorthandedGoalsAgainst  int     `db:"shorthanded_goals_against"`
	PIM                      int     `db:"pim"`
	GoalsAgainst             int     `db:"goals_against"`
	ShotsAgainst             int     `db:"shots_against"`
	Saves                    int     `db:"saves"`
	TOI                      string  `db:"toi"`
	Starter                  bool    `db:"starter"`
	Decision                 string  `db:"decision"`
}

func (m goalieStatsTableModel) toDomain() goaliestats.Line {
	return goaliestats.Line{
		Seq:                      m.Seq,
		GameID:                   m.GameID,
		PlayerID:                 m.PlayerID,
		TeamID:                   m.TeamID,
		Role:                     homeoraway.Role(m.Side),
		EvenStrengthShotsAgainst: m.EvenStrengthShotsAgainst,
		PowerPlayShotsAgainst:    m.PowerPlayShotsAgainst,
		ShorthandedShotsAgainst:  m.ShorthandedShotsAgainst,
		SaveShotsAgainst:         m.SaveShotsAgainst,
		SavePct:                  m.SavePct,
		EvenStrengthGoalsAgainst: m.EvenStrengthGoalsAgainst,
		PowerPlayGoalsAgainst:    m.PowerPlayGoalsAgainst,
		ShorthandedGoalsAgainst:  m.ShorthandedGoalsAgainst,
		PIM:                      m.PIM,
		GoalsAgainst:             m.GoalsAgainst,
		ShotsAgainst:             m.ShotsAgainst,
		Saves:                    m.Saves,
		TOI:                      m.TOI,
		Starter:                  m.Starter,
		Decision:                 m.Decision,
	}
}

func (r *GoalieStatsRepository) Append(ctx context.Context, item goaliestats.Line) (int64, error) {
	const query = `INSERT INTO goalie_game_stats (
    game_id, player_id, team_id, side, even_strength_shots_against, power_play_shots_against,
    shorthanded_shots_against, save_shots_against, save_pct, even_strength_goals_against,
    power_play_goals_against, shorthanded_goals_against, pim, goals_against, shots_against,
    saves, toi, starter, decision
) VALUES (
    :game_id, :player_id, :team_id, :side, :even_strength_shots_against, :power_play_shots_against,
    :shorthanded_shots_against, :save_shots_against, :save_pct, :even_strength_goals_against,
    :power_play_goals_against, :shorthanded_goals_against, :pim, :goals_against, :shots_against,
    :saves, :toi, :starter, :decision
) RETURNING seq`

	row := goalieStatsTableModel{
		GameID:                   item.GameID,
		PlayerID:                 item.PlayerID,
		TeamID:                   item.TeamID,
		Side:                     string(item.Role),
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
	}

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert goalie line: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var seq int64
	if err := stmt.GetContext(ctx, &seq, row); err != nil {
		return 0, fmt.Errorf("insert goalie line game=%d player=%d: %w", item.GameID, item.PlayerID, err)
	}

	return seq, nil
}

func (r *GoalieStatsRepository) List(ctx context.Context) ([]goaliestats.Line, error) {
	const query = `SELECT seq, game_id, player_id, team_id, side, even_strength_shots_against,
    power_play_shots_against, shorthanded_shots_against, save_shots_against, save_pct,
    even_strength_goals_against, power_play_goals_against, shorthanded_goals_against,
    pim, goals_against, shots_against, saves, toi, starter, decision
FROM goalie_game_stats ORDER BY seq`

	var rows []goalieStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select goalie lines: %w", err)
	}

	out := make([]goaliestats.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
