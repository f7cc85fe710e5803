package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ClubScheduleSeason(ctx context.Context, teamAbbrev, season string) ([]usecase.ExternalScheduleGame, []rawdata.Payload, error) {
	args := m.Called(ctx, teamAbbrev, season)
	return args.Get(0).([]usecase.ExternalScheduleGame), args.Get(1).([]rawdata.Payload), args.Error(2)
}

func (m *mockProvider) GameBoxScore(ctx context.Context, gameID int64) (usecase.ExternalBoxScore, []rawdata.Payload, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(usecase.ExternalBoxScore), args.Get(1).([]rawdata.Payload), args.Error(2)
}

func (m *mockProvider) PlayerLanding(ctx context.Context, playerID int64) (usecase.ExternalPlayerProfile, []rawdata.Payload, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(usecase.ExternalPlayerProfile), args.Get(1).([]rawdata.Payload), args.Error(2)
}

func TestBuildSeasons_ArchivesRawPayloadsWhenEnabled(t *testing.T) {
	t.Parallel()

	f := newBuilderFixture()
	provider := &mockProvider{}

	eligible := officialGame(2023020009, 10, 8, 3, 1)
	schedulePayload := []rawdata.Payload{{Source: "nhl-api-web", EntityType: "schedule", EntityKey: "TOR/20232024", PayloadHash: "h1"}}
	boxPayload := []rawdata.Payload{{Source: "nhl-api-web", EntityType: "boxscore", EntityKey: "2023020009", PayloadHash: "h2"}}
	playerPayload := []rawdata.Payload{{Source: "nhl-api-web", EntityType: "player", EntityKey: "100", PayloadHash: "h3"}}

	provider.
		On("ClubScheduleSeason", mock.Anything, "TOR", "20232024").
		Return([]usecase.ExternalScheduleGame{eligible}, schedulePayload, nil).
		Once()
	provider.
		On("ClubScheduleSeason", mock.Anything, mock.Anything, "20232024").
		Return([]usecase.ExternalScheduleGame{}, []rawdata.Payload(nil), nil)
	provider.
		On("GameBoxScore", mock.Anything, eligible.ID).
		Return(usecase.ExternalBoxScore{
			GameID: eligible.ID, HomeTeamID: 10, AwayTeamID: 8, RosterPublished: true,
			HomeSkaters: []usecase.ExternalSkaterLine{{PlayerID: 100, TOI: "20:00"}},
		}, boxPayload, nil).
		Once()
	provider.
		On("PlayerLanding", mock.Anything, int64(100)).
		Return(usecase.ExternalPlayerProfile{PlayerID: 100, IsActive: true}, playerPayload, nil).
		Once()

	svc := usecase.NewBuilderService(
		provider, f.games, f.players, f.skaters, f.goalies, f.raw,
		logging.NewNop(), usecase.BuilderConfig{MaxWorkers: 1, ArchiveRaw: true},
	)

	result, err := svc.BuildSeasons(context.Background(), []string{"20232024"})
	if err != nil {
		t.Fatalf("BuildSeasons: %v", err)
	}
	if result.GamesIngested != 1 {
		t.Fatalf("expected 1 ingested game, got %+v", result)
	}
	if f.raw.Len() != 3 {
		t.Fatalf("expected schedule, box score, and player payloads archived, got %d", f.raw.Len())
	}

	provider.AssertExpectations(t)
}
