package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattRWallace/NHLPredictor/internal/domain/player"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

type playerTableModel struct {
	ID            int64  `db:"id"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	CurrentTeamID int64  `db:"current_team_id"`
	HeightCm      int    `db:"height_cm"`
	WeightKg      int    `db:"weight_kg"`
	IsActive      bool   `db:"is_active"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		CurrentTeamID: m.CurrentTeamID,
		HeightCm:      m.HeightCm,
		WeightKg:      m.WeightKg,
		Active:        m.IsActive,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (player.Player, error) {
	const query = `SELECT id, first_name, last_name, current_team_id, height_cm, weight_kg, is_active
FROM players WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: player %d", usecase.ErrNotFound, id)
		}
		return player.Player{}, fmt.Errorf("select player %d: %w", id, err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	const query = `INSERT INTO players (id, first_name, last_name, current_team_id, height_cm, weight_kg, is_active)
VALUES (:id, :first_name, :last_name, :current_team_id, :height_cm, :weight_kg, :is_active)
ON CONFLICT (id) DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    current_team_id = EXCLUDED.current_team_id,
    height_cm = EXCLUDED.height_cm,
    weight_kg = EXCLUDED.weight_kg,
    is_active = EXCLUDED.is_active,
    updated_at = NOW()`

	row := playerTableModel{
		ID:            item.ID,
		FirstName:     item.FirstName,
		LastName:      item.LastName,
		CurrentTeamID: item.CurrentTeamID,
		HeightCm:      item.HeightCm,
		WeightKg:      item.WeightKg,
		IsActive:      item.Active,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert player %d: %w", item.ID, err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}

	return nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	const query = `SELECT id, first_name, last_name, current_team_id, height_cm, weight_kg, is_active
FROM players ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
