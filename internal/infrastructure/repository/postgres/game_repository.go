package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

type gameTableModel struct {
	ID            int64  `db:"id"`
	Season        string `db:"season"`
	GameType      int    `db:"game_type"`
	GameState     int    `db:"game_state"`
	HomeTeamID    int64  `db:"home_team_id"`
	AwayTeamID    int64  `db:"away_team_id"`
	Winner        string `db:"winner"`
	StatsIngested bool   `db:"stats_ingested"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:            m.ID,
		Season:        m.Season,
		Type:          game.GameType(m.GameType),
		State:         game.GameState(m.GameState),
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		Winner:        game.Winner(m.Winner),
		StatsIngested: m.StatsIngested,
	}
}

func (r *GameRepository) Get(ctx context.Context, id int64) (game.Game, error) {
	const query = `SELECT id, season, game_type, game_state, home_team_id, away_team_id, winner, stats_ingested
FROM games WHERE id = $1`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return game.Game{}, fmt.Errorf("%w: game %d", usecase.ErrNotFound, id)
		}
		return game.Game{}, fmt.Errorf("select game %d: %w", id, err)
	}

	return row.toDomain(), nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	const query = `INSERT INTO games (id, season, game_type, game_state, home_team_id, away_team_id, winner, stats_ingested)
VALUES (:id, :season, :game_type, :game_state, :home_team_id, :away_team_id, :winner, :stats_ingested)
ON CONFLICT (id) DO UPDATE SET
    season = EXCLUDED.season,
    game_type = EXCLUDED.game_type,
    game_state = EXCLUDED.game_state,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    winner = EXCLUDED.winner,
    stats_ingested = EXCLUDED.stats_ingested,
    updated_at = NOW()`

	row := gameTableModel{
		ID:            item.ID,
		Season:        item.Season,
		GameType:      int(item.Type),
		GameState:     int(item.State),
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		Winner:        string(item.Winner),
		StatsIngested: item.StatsIngested,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert game %d: %w", item.ID, err)
	}

	return nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	const query = `SELECT id, season, game_type, game_state, home_team_id, away_team_id, winner, stats_ingested
FROM games ORDER BY id`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
