package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MattRWallace/NHLPredictor/internal/domain/dataset"
	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
	"github.com/MattRWallace/NHLPredictor/internal/infrastructure/repository/memory"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

type summarizerFixture struct {
	games   *memory.GameRepository
	skaters *memory.SkaterStatsRepository
	goalies *memory.GoalieStatsRepository
	svc     *usecase.SummarizerService
}

func newSummarizerFixture() *summarizerFixture {
	f := &summarizerFixture{
		games:   memory.NewGameRepository(),
		skaters: memory.NewSkaterStatsRepository(),
		goalies: memory.NewGoalieStatsRepository(),
	}
	f.svc = usecase.NewSummarizerService(f.games, f.skaters, f.goalies, logging.NewNop())
	return f
}

// cellIndex resolves a header column name to its index in FeatureRow.Cells,
// which excludes the leading gameId column.
func cellIndex(t *testing.T, name string) int {
	t.Helper()
	for i, col := range dataset.Header() {
		if col == name {
			return i - 1
		}
	}
	t.Fatalf("column %q not in header", name)
	return -1
}

func cleanGoalie(gameID, playerID int64, role homeoraway.Role) goaliestats.Line {
	return goaliestats.Line{
		GameID: gameID, PlayerID: playerID, TeamID: 1, Role: role,
		EvenStrengthShotsAgainst: "0/0",
		PowerPlayShotsAgainst:    "0/0",
		ShorthandedShotsAgainst:  "0/0",
		SaveShotsAgainst:         "0/0",
		TOI:                      "60:00",
	}
}

func TestSummarize_SumsAndWeightsSkaterStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	lines := []skaterstats.Line{
		{GameID: 1, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, Goals: 2, Assists: 1, FaceoffWinningPct: 0.6, TOI: "20:00"},
		{GameID: 1, PlayerID: 101, TeamID: 10, Role: homeoraway.Home, Goals: 1, Assists: 2, FaceoffWinningPct: 0.3, TOI: "10:00"},
		{GameID: 1, PlayerID: 200, TeamID: 8, Role: homeoraway.Away, Goals: 1, TOI: "15:00"},
	}
	for _, line := range lines {
		if _, err := f.skaters.Append(ctx, line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	matrix, result, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if result.Rows != 1 || len(matrix.Rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", result)
	}

	row := matrix.Rows[0]
	if got := row.Cells[cellIndex(t, "home_skater_Goals")]; !got.Valid || got.Float64 != 3 {
		t.Fatalf("home goals: %+v", got)
	}
	if got := row.Cells[cellIndex(t, "home_skater_Assists")]; got.Float64 != 3 {
		t.Fatalf("home assists: %+v", got)
	}
	if got := row.Cells[cellIndex(t, "home_skater_ToiSeconds")]; got.Float64 != 1800 {
		t.Fatalf("home toi seconds: %+v", got)
	}
	// 0.6 weighted by 1200s and 0.3 by 600s
	want := (0.6*1200 + 0.3*600) / 1800
	if got := row.Cells[cellIndex(t, "home_skater_FaceoffPct")]; math.Abs(got.Float64-want) > 1e-9 {
		t.Fatalf("home faceoff pct = %v, want %v", got.Float64, want)
	}
	if got := row.Cells[cellIndex(t, "away_skater_Goals")]; got.Float64 != 1 {
		t.Fatalf("away goals: %+v", got)
	}
}

func TestSummarize_RecomputesSavePctFromSums(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	starter := cleanGoalie(1, 300, homeoraway.Home)
	starter.EvenStrengthShotsAgainst = "18/20"
	starter.SaveShotsAgainst = "18/20"
	starter.SavePct = 0.9
	starter.TOI = "40:00"

	backup := cleanGoalie(1, 301, homeoraway.Home)
	backup.EvenStrengthShotsAgainst = "5/10"
	backup.SaveShotsAgainst = "5/10"
	backup.SavePct = 0.5
	backup.TOI = "20:00"

	for _, line := range []goaliestats.Line{starter, backup, cleanGoalie(1, 400, homeoraway.Away)} {
		if _, err := f.goalies.Append(ctx, line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	matrix, _, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	row := matrix.Rows[0]

	if got := row.Cells[cellIndex(t, "home_goalie_SaveSavesAgainst")]; got.Float64 != 23 {
		t.Fatalf("summed saves: %+v", got)
	}
	if got := row.Cells[cellIndex(t, "home_goalie_SaveShotsAgainst")]; got.Float64 != 30 {
		t.Fatalf("summed shots: %+v", got)
	}
	// 23/30, not the 0.7 average of the per-goalie percentages
	if got := row.Cells[cellIndex(t, "home_goalie_SavePct")]; math.Abs(got.Float64-23.0/30.0) > 1e-9 {
		t.Fatalf("save pct = %v, want %v", got.Float64, 23.0/30.0)
	}
	if got := row.Cells[cellIndex(t, "home_goalie_ToiSeconds")]; got.Float64 != 3600 {
		t.Fatalf("goalie toi seconds: %+v", got)
	}
}

func TestSummarize_OneSidedGameKeepsRowWithNulls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	if _, err := f.skaters.Append(ctx, skaterstats.Line{
		GameID: 7, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, Goals: 4, TOI: "18:00",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	matrix, result, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if result.OneSidedGames != 1 || len(matrix.Rows) != 1 {
		t.Fatalf("expected one one-sided row, got %+v", result)
	}

	row := matrix.Rows[0]
	if got := row.Cells[cellIndex(t, "home_skater_Goals")]; !got.Valid || got.Float64 != 4 {
		t.Fatalf("home side should be populated: %+v", got)
	}
	if got := row.Cells[cellIndex(t, "away_skater_Goals")]; got.Valid {
		t.Fatalf("away skater cells should be null: %+v", got)
	}
	if got := row.Cells[cellIndex(t, "home_goalie_Saves")]; got.Valid {
		t.Fatalf("missing goalie block should be null: %+v", got)
	}
}

func TestSummarize_CollapsesDuplicateLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	line := skaterstats.Line{GameID: 3, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, Goals: 2, TOI: "20:00"}
	for i := 0; i < 2; i++ {
		if _, err := f.skaters.Append(ctx, line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	matrix, result, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if result.DuplicatesCollapsed != 1 {
		t.Fatalf("expected 1 collapsed duplicate, got %+v", result)
	}
	if got := matrix.Rows[0].Cells[cellIndex(t, "home_skater_Goals")]; got.Float64 != 2 {
		t.Fatalf("duplicate was double counted: %+v", got)
	}
}

func TestSummarize_LeftJoinsWinnerLabel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	if err := f.games.Upsert(ctx, game.Game{ID: 1, Winner: game.WinnerHome}); err != nil {
		t.Fatalf("upsert game: %v", err)
	}
	for _, gameID := range []int64{1, 2} {
		if _, err := f.skaters.Append(ctx, skaterstats.Line{
			GameID: gameID, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, TOI: "10:00",
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	matrix, result, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(matrix.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix.Rows))
	}
	if matrix.Rows[0].GameID != 1 || matrix.Rows[1].GameID != 2 {
		t.Fatalf("rows not sorted by game id: %+v", matrix.Rows)
	}
	if matrix.Rows[0].Label != "home" {
		t.Fatalf("expected home label, got %q", matrix.Rows[0].Label)
	}
	if matrix.Rows[1].Label != "" {
		t.Fatalf("expected empty label for unknown game, got %q", matrix.Rows[1].Label)
	}
	if result.UnlabeledGames != 1 {
		t.Fatalf("expected 1 unlabeled game, got %+v", result)
	}
}

func TestSummarize_BadCompoundFormatAborts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	line := cleanGoalie(1, 300, homeoraway.Home)
	line.SaveShotsAgainst = "28 of 30"
	if _, err := f.goalies.Append(ctx, line); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, _, err := f.svc.Summarize(ctx)
	if !errors.Is(err, usecase.ErrBadStatFormat) {
		t.Fatalf("expected ErrBadStatFormat, got %v", err)
	}
}

func TestSummarize_RejectsCorruptGameID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	if _, err := f.skaters.Append(ctx, skaterstats.Line{
		GameID: 0, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, TOI: "10:00",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, _, err := f.svc.Summarize(ctx)
	if !errors.Is(err, usecase.ErrJoinMismatch) {
		t.Fatalf("expected ErrJoinMismatch, got %v", err)
	}
}

func TestSummarize_RowWidthMatchesHeader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSummarizerFixture()

	if _, err := f.skaters.Append(ctx, skaterstats.Line{
		GameID: 5, PlayerID: 100, TeamID: 10, Role: homeoraway.Home, TOI: "10:00",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	matrix, _, err := f.svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	// header carries gameId and the label on top of the stat cells
	if len(matrix.Header) != len(matrix.Rows[0].Cells)+2 {
		t.Fatalf("header width %d does not fit %d cells", len(matrix.Header), len(matrix.Rows[0].Cells))
	}
}
