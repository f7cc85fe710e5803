package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

type rawDataPayloadInsertModel struct {
	Source      string     `db:"source"`
	EntityType  string     `db:"entity_type"`
	EntityKey   string     `db:"entity_key"`
	Season      string     `db:"season"`
	GameID      int64      `db:"game_id"`
	TeamAbbrev  string     `db:"team_abbrev"`
	PlayerID    int64      `db:"player_id"`
	Payload     string     `db:"payload"`
	PayloadHash string     `db:"payload_hash"`
	FetchedAt   *time.Time `db:"fetched_at"`
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	const query = `INSERT INTO raw_data_payloads (
    source, entity_type, entity_key, season, game_id, team_abbrev, player_id, payload, payload_hash, fetched_at
) VALUES (
    :source, :entity_type, :entity_key, :season, :game_id, :team_abbrev, :player_id, :payload, :payload_hash, :fetched_at
) ON CONFLICT (source, entity_type, entity_key) DO UPDATE SET
    season = EXCLUDED.season,
    game_id = EXCLUDED.game_id,
    team_abbrev = EXCLUDED.team_abbrev,
    player_id = EXCLUDED.player_id,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		row := rawDataPayloadInsertModel{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			Season:      item.Season,
			GameID:      item.GameID,
			TeamAbbrev:  item.TeamAbbrev,
			PlayerID:    item.PlayerID,
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			FetchedAt:   item.FetchedAt,
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}

	return nil
}
