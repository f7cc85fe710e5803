package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
)

type SkaterStatsRepository struct {
	db *sqlx.DB
}

func NewSkaterStatsRepository(db *sqlx.DB) *SkaterStatsRepository {
	return &SkaterStatsRepository{db: db}
}

type skaterStatsTableModel struct {
	Seq               int64   `db:"seq"`
	GameID            int64   `db:"game_id"`
	PlayerID          int64   `db:"player_id"`
	TeamID            int64   `db:"team_id"`
	Side              string  `db:"side"`
	Goals             int     `db:"goals"`
	Assists           int     `db:"assists"`
	Points            int     `db:"points"`
	PlusMinus         int     `db:"plus_minus"`
	PIM               int     `db:"pim"`
	Hits              int     `db:"hits"`
	PowerPlayGoals    int     `db:"power_play_goals"`
	ShotsOnGoal       int     `db:"shots_on_goal"`
	BlockedShots      int     `db:"blocked_shots"`
	Shifts            int     `db:"shifts"`
	Giveaways         int     `db:"giveaways"`
	Takeaways         int     `db:"takeaways"`
	FaceoffWinningPct float64 `db:"faceoff_winning_pct"`
	TOI               string  `db:"toi"`
}

func (m skaterStatsTableModel) toDomain() skaterstats.Line {
	return skaterstats.Line{
		Seq:               m.Seq,
		GameID:            m.GameID,
		PlayerID:          m.PlayerID,
		TeamID:            m.TeamID,
		Role:              homeoraway.Role(m.Side),
		Goals:             m.Goals,
		Assists:           m.Assists,
		Points:            m.Points,
		PlusMinus:         m.PlusMinus,
		PIM:               m.PIM,
		Hits:              m.Hits,
		PowerPlayGoals:    m.PowerPlayGoals,
		ShotsOnGoal:       m.ShotsOnGoal,
		BlockedShots:      m.BlockedShots,
		Shifts:            m.Shifts,
		Giveaways:         m.Giveaways,
		Takeaways:         m.Takeaways,
		FaceoffWinningPct: m.FaceoffWinningPct,
		TOI:               m.TOI,
	}
}

func (r *SkaterStatsRepository) Append(ctx context.Context, item skaterstats.Line) (int64, error) {
	const query = `INSERT INTO skater_game_stats (
    game_id, player_id, team_id, side, goals, assists, points, plus_minus, pim, hits,
    power_play_goals, shots_on_goal, blocked_shots, shifts, giveaways, takeaways,
    faceoff_winning_pct, toi
) VALUES (
    :game_id, :player_id, :team_id, :side, :goals, :assists, :points, :plus_minus, :pim, :hits,
    :power_play_goals, :shots_on_goal, :blocked_shots, :shifts, :giveaways, :takeaways,
    :faceoff_winning_pct, :toi
) RETURNING seq`

	row := skaterStatsTableModel{
		GameID:            item.GameID,
		PlayerID:          item.PlayerID,
		TeamID:            item.TeamID,
		Side:              string(item.Role),
		Goals:             item.Goals,
		Assists:           item.Assists,
		Points:            item.Points,
		PlusMinus:         item.PlusMinus,
		PIM:               item.PIM,
		Hits:              item.Hits,
		PowerPlayGoals:    item.PowerPlayGoals,
		ShotsOnGoal:       item.ShotsOnGoal,
		BlockedShots:      item.BlockedShots,
		Shifts:            item.Shifts,
		Giveaways:         item.Giveaways,
		Takeaways:         item.Takeaways,
		FaceoffWinningPct: item.FaceoffWinningPct,
		TOI:               item.TOI,
	}

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert skater line: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var seq int64
	if err := stmt.GetContext(ctx, &seq, row); err != nil {
		return 0, fmt.Errorf("insert skater line game=%d player=%d: %w", item.GameID, item.PlayerID, err)
	}

	return seq, nil
}

func (r *SkaterStatsRepository) List(ctx context.Context) ([]skaterstats.Line, error) {
	const query = `SELECT seq, game_id, player_id, team_id, side, goals, assists, points, plus_minus, pim,
    hits, power_play_goals, shots_on_goal, blocked_shots, shifts, giveaways, takeaways,
    faceoff_winning_pct, toi
FROM skater_game_stats ORDER BY seq`

	var rows []skaterStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select skater lines: %w", err)
	}

	out := make([]skaterstats.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
