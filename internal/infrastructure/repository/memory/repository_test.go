package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/domain/player"
	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

func TestGameRepository_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGameRepository()

	item := game.Game{ID: 2023020001, Season: "20232024", Winner: game.WinnerHome}
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	item.Winner = game.WinnerAway
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	games, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game after double upsert, got %d", len(games))
	}
	if games[0].Winner != game.WinnerAway {
		t.Fatalf("expected overwrite, got %+v", games[0])
	}

	stored, err := repo.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if stored.Winner != game.WinnerAway {
		t.Fatalf("expected stored row overwritten, got %+v", stored)
	}
}

func TestGameRepository_GetMissing(t *testing.T) {
	t.Parallel()

	_, err := NewGameRepository().Get(context.Background(), 42)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerRepository_DeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository()

	if err := repo.Delete(ctx, 99); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	if err := repo.Upsert(ctx, player.Player{ID: 1, FirstName: "Auston", Active: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, 1); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSkaterStatsRepository_AppendAssignsIncreasingSeq(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSkaterStatsRepository()

	first, err := repo.Append(ctx, skaterstats.Line{GameID: 1, PlayerID: 10})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := repo.Append(ctx, skaterstats.Line{GameID: 1, PlayerID: 10})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing seq, got %d then %d", first, second)
	}

	lines, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected duplicates preserved, got %d lines", len(lines))
	}
	if lines[0].Seq != first || lines[1].Seq != second {
		t.Fatalf("seq not stored: %+v", lines)
	}
}

func TestRawDataRepository_UpsertManyReplaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRawDataRepository()

	items := []rawdata.Payload{
		{EntityType: "boxscore", EntityKey: "1", PayloadHash: "aaa"},
		{EntityType: "boxscore", EntityKey: "2", PayloadHash: "bbb"},
	}
	if err := repo.UpsertMany(ctx, items); err != nil {
		t.Fatalf("upsert many: %v", err)
	}
	if err := repo.UpsertMany(ctx, items[:1]); err != nil {
		t.Fatalf("upsert many again: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected replacement not accumulation, got %d items", repo.Len())
	}
}
