package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
	"github.com/MattRWallace/NHLPredictor/internal/domain/player"
	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/team"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
)

// BuilderConfig tunes one ingestion run. MaxWorkers bounds the schedule
// worker pool; 1 disables the pool and runs sequentially. ArchiveRaw turns
// on provider payload archiving when a rawdata repository is wired.
type BuilderConfig struct {
	MaxWorkers int
	ArchiveRaw bool
}

// BuilderService walks the club schedules of every franchise for the
// requested seasons and persists games, stat lines, and the player roster.
// Per-unit failures (one schedule, one box score, one player) are logged and
// counted, never fatal: a partial run is preferred to no run.
type BuilderService struct {
	provider   StatsProvider
	gameRepo   game.Repository
	playerRepo player.Repository
	skaterRepo skaterstats.Repository
	goalieRepo goaliestats.Repository
	rawRepo    rawdata.Repository
	logger     *logging.Logger
	cfg        BuilderConfig
}

func NewBuilderService(
	provider StatsProvider,
	gameRepo game.Repository,
	playerRepo player.Repository,
	skaterRepo skaterstats.Repository,
	goalieRepo goaliestats.Repository,
	rawRepo rawdata.Repository,
	logger *logging.Logger,
	cfg BuilderConfig,
) *BuilderService {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BuilderService{
		provider:   provider,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		skaterRepo: skaterRepo,
		goalieRepo: goalieRepo,
		rawRepo:    rawRepo,
		logger:     logger,
		cfg:        cfg,
	}
}

// BuildResult is the run summary of one BuildSeasons call.
type BuildResult struct {
	SeasonsProcessed int
	TeamsProcessed   int
	ScheduleErrors   int

	GamesSeen           int
	GamesSkippedDupe    int
	GamesSkippedType    int
	GamesSkippedState   int
	GamesIngested       int
	BoxScoreErrors      int
	StoreErrors         int
	RostersUnpublished  int
	SkaterLinesAppended int
	GoalieLinesAppended int

	PlayersSynced   int
	PlayersUpserted int
	PlayersDeleted  int
	PlayerErrors    int
}

// buildState is the shared mutable state of one run. Schedule units execute
// concurrently, so every access goes through the mutex.
type buildState struct {
	mu        sync.Mutex
	result    BuildResult
	claimed   map[int64]struct{}
	playerIDs map[int64]struct{}
}

func newBuildState() *buildState {
	return &buildState{
		claimed:   make(map[int64]struct{}),
		playerIDs: make(map[int64]struct{}),
	}
}

// claim marks a game id as owned by the current run. Every game appears in
// two club schedules (home and away), so the second claim loses.
func (st *buildState) claim(gameID int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.claimed[gameID]; ok {
		return false
	}
	st.claimed[gameID] = struct{}{}
	return true
}

func (st *buildState) recordPlayers(ids ...int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, id := range ids {
		if id > 0 {
			st.playerIDs[id] = struct{}{}
		}
	}
}

// sortedPlayerIDs snapshots the collected ids in ascending order so the
// roster pass is deterministic run to run.
func (st *buildState) sortedPlayerIDs() []int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]int64, 0, len(st.playerIDs))
	for id := range st.playerIDs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (st *buildState) update(fn func(*BuildResult)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(&st.result)
}

func (st *buildState) snapshot() BuildResult {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.result
}

// BuildSeasons runs the full ingestion pipeline: a schedule-and-box-score
// pass over every (season, franchise) pair, then, strictly after that pass
// completes, a roster pass over every player seen in a persisted stat line.
func (s *BuilderService) BuildSeasons(ctx context.Context, seasons []string) (BuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "BuilderService.BuildSeasons")
	defer span.End()

	if len(seasons) == 0 {
		return BuildResult{}, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}

	type unit struct {
		season string
		team   string
	}
	teams := team.Registry()
	units := make([]unit, 0, len(seasons)*len(teams))
	for _, season := range seasons {
		for _, abbrev := range teams {
			units = append(units, unit{season: season, team: abbrev})
		}
	}

	st := newBuildState()
	st.update(func(r *BuildResult) {
		r.SeasonsProcessed = len(seasons)
		r.TeamsProcessed = len(teams)
	})

	if s.cfg.MaxWorkers > 1 {
		pool, err := ants.NewPool(s.cfg.MaxWorkers)
		if err != nil {
			return st.snapshot(), fmt.Errorf("create schedule worker pool: %w", err)
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for _, u := range units {
			u := u
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				s.ingestTeamSeason(ctx, u.season, u.team, st)
			}); err != nil {
				wg.Done()
				st.update(func(r *BuildResult) { r.ScheduleErrors++ })
				s.logger.ErrorContext(ctx, "submit schedule task failed",
					"team", u.team, "season", u.season, "error", err)
			}
		}
		wg.Wait()
	} else {
		for _, u := range units {
			s.ingestTeamSeason(ctx, u.season, u.team, st)
		}
	}

	// Roster pass. Runs only after every schedule unit has finished so the
	// player id set is complete.
	ids := st.sortedPlayerIDs()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return st.snapshot(), err
		}
		s.syncPlayer(ctx, id, st)
	}
	st.update(func(r *BuildResult) { r.PlayersSynced = len(ids) })

	result := st.snapshot()
	s.logger.InfoContext(ctx, "build run finished",
		"seasons", result.SeasonsProcessed,
		"games_ingested", result.GamesIngested,
		"games_skipped_duplicate", result.GamesSkippedDupe,
		"skater_lines", result.SkaterLinesAppended,
		"goalie_lines", result.GoalieLinesAppended,
		"players_upserted", result.PlayersUpserted,
		"players_deleted", result.PlayersDeleted,
		"schedule_errors", result.ScheduleErrors,
		"box_score_errors", result.BoxScoreErrors,
		"store_errors", result.StoreErrors,
	)
	return result, nil
}

func (s *BuilderService) ingestTeamSeason(ctx context.Context, season, abbrev string, st *buildState) {
	games, payloads, err := s.provider.ClubScheduleSeason(ctx, abbrev, season)
	if err != nil {
		st.update(func(r *BuildResult) { r.ScheduleErrors++ })
		s.logger.WarnContext(ctx, "fetch club schedule failed",
			"team", abbrev, "season", season, "error", err)
		return
	}
	s.archive(ctx, payloads)

	for _, item := range games {
		if ctx.Err() != nil {
			return
		}
		s.ingestGame(ctx, season, item, st)
	}
}

func (s *BuilderService) ingestGame(ctx context.Context, season string, sched ExternalScheduleGame, st *buildState) {
	st.update(func(r *BuildResult) { r.GamesSeen++ })

	if !st.claim(sched.ID) {
		st.update(func(r *BuildResult) { r.GamesSkippedDupe++ })
		return
	}

	stored, err := s.gameRepo.Get(ctx, sched.ID)
	switch {
	case err == nil && stored.StatsIngested:
		// Stat lines for this game landed in a previous run.
		st.update(func(r *BuildResult) { r.GamesSkippedDupe++ })
		return
	case err != nil && !errors.Is(err, ErrNotFound):
		st.update(func(r *BuildResult) { r.StoreErrors++ })
		s.logger.ErrorContext(ctx, "load persisted game failed", "game_id", sched.ID, "error", err)
		return
	}

	gameType := game.GameType(sched.TypeCode)
	if sched.TypeAbsent {
		gameType = game.TypePreseason
		s.logger.WarnContext(ctx, "schedule entry has no game type, treating as preseason",
			"game_id", sched.ID, "season", season)
	}
	if !gameType.IsSupported() {
		st.update(func(r *BuildResult) { r.GamesSkippedType++ })
		return
	}

	state := game.ParseState(sched.StateCode)
	if sched.StateAbsent {
		s.logger.WarnContext(ctx, "schedule entry has no game state, treating as future",
			"game_id", sched.ID, "season", season)
	}

	item := game.Game{
		ID:         sched.ID,
		Season:     sched.Season,
		Type:       gameType,
		State:      state,
		HomeTeamID: sched.HomeTeamID,
		AwayTeamID: sched.AwayTeamID,
		Winner:     game.DeriveWinner(sched.HomeScore, sched.AwayScore),
	}
	if item.Season == "" {
		item.Season = season
	}

	if !state.IsDatasetEligible() {
		// Record season, type, and state anyway so the lifecycle of a
		// not-yet-official game stays visible from run to run. StatsIngested
		// stays false, so the next run re-examines the game.
		if err := s.gameRepo.Upsert(ctx, item); err != nil {
			st.update(func(r *BuildResult) { r.StoreErrors++ })
			s.logger.ErrorContext(ctx, "persist game failed", "game_id", sched.ID, "error", err)
			return
		}
		st.update(func(r *BuildResult) { r.GamesSkippedState++ })
		return
	}

	box, payloads, err := s.provider.GameBoxScore(ctx, sched.ID)
	if err != nil {
		st.update(func(r *BuildResult) { r.BoxScoreErrors++ })
		s.logger.WarnContext(ctx, "fetch box score failed", "game_id", sched.ID, "error", err)
		return
	}
	s.archive(ctx, payloads)

	if !box.RosterPublished {
		// The game is official but per-player stats are not out yet. Persist
		// the metadata row with StatsIngested false so the game is both
		// observable in the store and retried on the next run.
		if err := s.gameRepo.Upsert(ctx, item); err != nil {
			st.update(func(r *BuildResult) { r.StoreErrors++ })
			s.logger.ErrorContext(ctx, "persist game failed", "game_id", sched.ID, "error", err)
			return
		}
		st.update(func(r *BuildResult) { r.RostersUnpublished++ })
		s.logger.WarnContext(ctx, "box score has no player stats yet",
			"game_id", sched.ID, "error", ErrRosterUnpublished)
		return
	}

	item.StatsIngested = true
	if err := s.gameRepo.Upsert(ctx, item); err != nil {
		st.update(func(r *BuildResult) { r.StoreErrors++ })
		s.logger.ErrorContext(ctx, "persist game failed", "game_id", sched.ID, "error", err)
		return
	}

	s.appendSkaters(ctx, sched.ID, box.HomeTeamID, homeoraway.Home, box.HomeSkaters, st)
	s.appendSkaters(ctx, sched.ID, box.AwayTeamID, homeoraway.Away, box.AwaySkaters, st)
	s.appendGoalies(ctx, sched.ID, box.HomeTeamID, homeoraway.Home, box.HomeGoalies, st)
	s.appendGoalies(ctx, sched.ID, box.AwayTeamID, homeoraway.Away, box.AwayGoalies, st)

	st.update(func(r *BuildResult) { r.GamesIngested++ })
}

func (s *BuilderService) appendSkaters(ctx context.Context, gameID, teamID int64, role homeoraway.Role, lines []ExternalSkaterLine, st *buildState) {
	for _, line := range lines {
		item := skaterstats.Line{
			GameID:            gameID,
			PlayerID:          line.PlayerID,
			TeamID:            teamID,
			Role:              role,
			Goals:             line.Goals,
			Assists:           line.Assists,
			Points:            line.Points,
			PlusMinus:         line.PlusMinus,
			PIM:               line.PIM,
			Hits:              line.Hits,
			PowerPlayGoals:    line.PowerPlayGoals,
			ShotsOnGoal:       line.ShotsOnGoal,
			BlockedShots:      line.BlockedShots,
			Shifts:            line.Shifts,
			Giveaways:         line.Giveaways,
			Takeaways:         line.Takeaways,
			FaceoffWinningPct: line.FaceoffWinningPct,
			TOI:               line.TOI,
		}
		if _, err := s.skaterRepo.Append(ctx, item); err != nil {
			st.update(func(r *BuildResult) { r.StoreErrors++ })
			s.logger.ErrorContext(ctx, "append skater line failed",
				"game_id", gameID, "player_id", line.PlayerID, "error", err)
			continue
		}
		st.update(func(r *BuildResult) { r.SkaterLinesAppended++ })
		st.recordPlayers(line.PlayerID)
	}
}

func (s *BuilderService) appendGoalies(ctx context.Context, gameID, teamID int64, role homeoraway.Role, lines []ExternalGoalieLine, st *buildState) {
	for _, line := range lines {
		item := goaliestats.Line{
			GameID:                   gameID,
			PlayerID:                 line.PlayerID,
			TeamID:                   teamID,
			Role:                     role,
			EvenStrengthShotsAgainst: line.EvenStrengthShotsAgainst,
			PowerPlayShotsAgainst:    line.PowerPlayShotsAgainst,
			ShorthandedShotsAgainst:  line.ShorthandedShotsAgainst,
			SaveShotsAgainst:         line.SaveShotsAgainst,
			SavePct:                  line.SavePct,
			EvenStrengthGoalsAgainst: line.EvenStrengthGoalsAgainst,
			PowerPlayGoalsAgainst:    line.PowerPlayGoalsAgainst,
			ShorthandedGoalsAgainst:  line.ShorthandedGoalsAgainst,
			PIM:                      line.PIM,
			GoalsAgainst:             line.GoalsAgainst,
			ShotsAgainst:             line.ShotsAgainst,
			Saves:                    line.Saves,
			TOI:                      line.TOI,
			Starter:                  line.Starter,
			Decision:                 line.Decision,
		}
		if _, err := s.goalieRepo.Append(ctx, item); err != nil {
			st.update(func(r *BuildResult) { r.StoreErrors++ })
			s.logger.ErrorContext(ctx, "append goalie line failed",
				"game_id", gameID, "player_id", line.PlayerID, "error", err)
			continue
		}
		st.update(func(r *BuildResult) { r.GoalieLinesAppended++ })
		st.recordPlayers(line.PlayerID)
	}
}

func (s *BuilderService) syncPlayer(ctx context.Context, playerID int64, st *buildState) {
	profile, payloads, err := s.provider.PlayerLanding(ctx, playerID)
	if err != nil {
		st.update(func(r *BuildResult) { r.PlayerErrors++ })
		s.logger.WarnContext(ctx, "fetch player landing failed", "player_id", playerID, "error", err)
		return
	}
	s.archive(ctx, payloads)

	if !profile.IsActive {
		if err := s.playerRepo.Delete(ctx, playerID); err != nil && !errors.Is(err, ErrNotFound) {
			st.update(func(r *BuildResult) { r.PlayerErrors++ })
			s.logger.ErrorContext(ctx, "delete inactive player failed", "player_id", playerID, "error", err)
			return
		}
		st.update(func(r *BuildResult) { r.PlayersDeleted++ })
		return
	}

	item := player.Player{
		ID:            profile.PlayerID,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		CurrentTeamID: profile.CurrentTeamID,
		HeightCm:      profile.HeightCm,
		WeightKg:      profile.WeightKg,
		Active:        true,
	}
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		st.update(func(r *BuildResult) { r.PlayerErrors++ })
		s.logger.ErrorContext(ctx, "upsert player failed", "player_id", playerID, "error", err)
		return
	}
	st.update(func(r *BuildResult) { r.PlayersUpserted++ })
}

func (s *BuilderService) archive(ctx context.Context, payloads []rawdata.Payload) {
	if !s.cfg.ArchiveRaw || s.rawRepo == nil || len(payloads) == 0 {
		return
	}
	if err := s.rawRepo.UpsertMany(ctx, payloads); err != nil {
		s.logger.WarnContext(ctx, "archive raw payloads failed",
			"count", len(payloads), "error", err)
	}
}
