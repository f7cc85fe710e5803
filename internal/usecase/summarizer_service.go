package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/MattRWallace/NHLPredictor/internal/domain/dataset"
	"github.com/MattRWallace/NHLPredictor/internal/domain/game"
	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
)

// SummarizerService reduces the persisted per-player stat lines to one
// feature row per game. A format failure in the stored data aborts the run:
// a dataset built from silently-defaulted stats is worse than no dataset.
type SummarizerService struct {
	gameRepo   game.Repository
	skaterRepo skaterstats.Repository
	goalieRepo goaliestats.Repository
	logger     *logging.Logger
}

func NewSummarizerService(
	gameRepo game.Repository,
	skaterRepo skaterstats.Repository,
	goalieRepo goaliestats.Repository,
	logger *logging.Logger,
) *SummarizerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SummarizerService{
		gameRepo:   gameRepo,
		skaterRepo: skaterRepo,
		goalieRepo: goalieRepo,
		logger:     logger,
	}
}

// SummarizeResult is the run summary of one Summarize call.
type SummarizeResult struct {
	SkaterLines         int
	GoalieLines         int
	DuplicatesCollapsed int
	SaveAnomalies       int
	OneSidedGames       int
	UnlabeledGames      int
	Rows                int
}

type sideKey struct {
	gameID int64
	role   homeoraway.Role
}

// skaterAggregate holds the running sums for one (game, side). faceoffPct is
// accumulated as a weighted numerator over a time-on-ice denominator.
type skaterAggregate struct {
	goals          int
	assists        int
	points         int
	plusMinus      int
	hits           int
	powerPlayGoals int
	shotsOnGoal    int
	blockedShots   int
	shifts         int
	giveaways      int
	takeaways      int

	faceoffWeighted float64
	faceoffWeight   float64
	toiSeconds      int
}

func (a *skaterAggregate) add(line skaterstats.Line, toiSeconds int) {
	a.goals += line.Goals
	a.assists += line.Assists
	a.points += line.Points
	a.plusMinus += line.PlusMinus
	a.hits += line.Hits
	a.powerPlayGoals += line.PowerPlayGoals
	a.shotsOnGoal += line.ShotsOnGoal
	a.blockedShots += line.BlockedShots
	a.shifts += line.Shifts
	a.giveaways += line.Giveaways
	a.takeaways += line.Takeaways
	a.toiSeconds += toiSeconds
	if toiSeconds > 0 {
		a.faceoffWeighted += line.FaceoffWinningPct * float64(toiSeconds)
		a.faceoffWeight += float64(toiSeconds)
	}
}

// cells returns the aggregate in dataset.SkaterColumns order.
func (a *skaterAggregate) cells() []dataset.Value {
	faceoffPct := 0.0
	if a.faceoffWeight > 0 {
		faceoffPct = a.faceoffWeighted / a.faceoffWeight
	}
	return []dataset.Value{
		dataset.Float(float64(a.goals)),
		dataset.Float(float64(a.assists)),
		dataset.Float(float64(a.points)),
		dataset.Float(float64(a.plusMinus)),
		dataset.Float(float64(a.hits)),
		dataset.Float(float64(a.powerPlayGoals)),
		dataset.Float(float64(a.shotsOnGoal)),
		dataset.Float(float64(a.blockedShots)),
		dataset.Float(float64(a.shifts)),
		dataset.Float(float64(a.giveaways)),
		dataset.Float(float64(a.takeaways)),
		dataset.Float(faceoffPct),
		dataset.Float(float64(a.toiSeconds)),
	}
}

type goalieAggregate struct {
	evenStrengthSaves int
	evenStrengthShots int
	powerPlaySaves    int
	powerPlayShots    int
	shorthandedSaves  int
	shorthandedShots  int
	totalSaves        int
	totalShots        int

	evenStrengthGoalsAgainst int
	powerPlayGoalsAgainst    int
	shorthandedGoalsAgainst  int
	pim                      int
	goalsAgainst             int
	shotsAgainst             int
	saves                    int
	toiSeconds               int
}

func (a *goalieAggregate) add(line NormalizedGoalieLine, toiSeconds int) {
	a.evenStrengthSaves += line.EvenStrengthSavesAgainst
	a.evenStrengthShots += line.EvenStrengthShotsAgainst
	a.powerPlaySaves += line.PowerPlaySavesAgainst
	a.powerPlayShots += line.PowerPlayShotsAgainst
	a.shorthandedSaves += line.ShorthandedSavesAgainst
	a.shorthandedShots += line.ShorthandedShotsAgainst
	a.totalSaves += line.SaveSavesAgainst
	a.totalShots += line.SaveShotsAgainst
	a.evenStrengthGoalsAgainst += line.EvenStrengthGoalsAgainst
	a.powerPlayGoalsAgainst += line.PowerPlayGoalsAgainst
	a.shorthandedGoalsAgainst += line.ShorthandedGoalsAgainst
	a.pim += line.PIM
	a.goalsAgainst += line.GoalsAgainst
	a.shotsAgainst += line.ShotsAgainst
	a.saves += line.Saves
	a.toiSeconds += toiSeconds
}

// cells returns the aggregate in dataset.GoalieColumns order. savePct is
// recomputed from the summed totals rather than averaged across goalies.
func (a *goalieAggregate) cells() []dataset.Value {
	savePct := 0.0
	if a.totalShots > 0 {
		savePct = float64(a.totalSaves) / float64(a.totalShots)
	}
	return []dataset.Value{
		dataset.Float(float64(a.evenStrengthSaves)),
		dataset.Float(float64(a.evenStrengthShots)),
		dataset.Float(float64(a.powerPlaySaves)),
		dataset.Float(float64(a.powerPlayShots)),
		dataset.Float(float64(a.shorthandedSaves)),
		dataset.Float(float64(a.shorthandedShots)),
		dataset.Float(float64(a.totalSaves)),
		dataset.Float(float64(a.totalShots)),
		dataset.Float(float64(a.evenStrengthGoalsAgainst)),
		dataset.Float(float64(a.powerPlayGoalsAgainst)),
		dataset.Float(float64(a.shorthandedGoalsAgainst)),
		dataset.Float(float64(a.pim)),
		dataset.Float(float64(a.goalsAgainst)),
		dataset.Float(float64(a.shotsAgainst)),
		dataset.Float(float64(a.saves)),
		dataset.Float(savePct),
		dataset.Float(float64(a.toiSeconds)),
	}
}

func nullCells(n int) []dataset.Value {
	return make([]dataset.Value, n)
}

// Summarize loads every stored stat line, collapses duplicates, splits the
// goalie compound fields, aggregates per (game, side), flattens the sides
// with an outer join, and left-joins the winner label from the games table.
// Rows come out sorted by game id, so two runs over the same store produce
// the same matrix.
func (s *SummarizerService) Summarize(ctx context.Context) (dataset.Matrix, SummarizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SummarizerService.Summarize")
	defer span.End()

	var result SummarizeResult

	skaterLines, err := s.skaterRepo.List(ctx)
	if err != nil {
		return dataset.Matrix{}, result, fmt.Errorf("list skater lines: %w", err)
	}
	goalieLines, err := s.goalieRepo.List(ctx)
	if err != nil {
		return dataset.Matrix{}, result, fmt.Errorf("list goalie lines: %w", err)
	}
	result.SkaterLines = len(skaterLines)
	result.GoalieLines = len(goalieLines)

	dedupedSkaters := DedupeSkaterLines(skaterLines)
	dedupedGoalies := DedupeGoalieLines(goalieLines)
	result.DuplicatesCollapsed = (len(skaterLines) - len(dedupedSkaters)) + (len(goalieLines) - len(dedupedGoalies))

	normalized, anomalies, err := NormalizeGoalieLines(dedupedGoalies)
	if err != nil {
		return dataset.Matrix{}, result, fmt.Errorf("normalize goalie lines: %w", err)
	}
	result.SaveAnomalies = anomalies
	if anomalies > 0 {
		s.logger.WarnContext(ctx, "goalie lines report more saves than shots", "count", anomalies)
	}

	skaterAggs := make(map[sideKey]*skaterAggregate)
	gameIDs := make(map[int64]struct{})
	for _, line := range dedupedSkaters {
		if line.GameID <= 0 || !line.Role.Valid() {
			return dataset.Matrix{}, result, fmt.Errorf("%w: skater line seq=%d has game_id=%d role=%q", ErrJoinMismatch, line.Seq, line.GameID, line.Role)
		}
		toiSeconds, toiErr := ParseTOISeconds(line.TOI)
		if toiErr != nil {
			toiSeconds = 0
		}
		k := sideKey{gameID: line.GameID, role: line.Role}
		agg, ok := skaterAggs[k]
		if !ok {
			agg = &skaterAggregate{}
			skaterAggs[k] = agg
		}
		agg.add(line, toiSeconds)
		gameIDs[line.GameID] = struct{}{}
	}

	goalieAggs := make(map[sideKey]*goalieAggregate)
	for _, line := range normalized {
		if line.GameID <= 0 || !line.Role.Valid() {
			return dataset.Matrix{}, result, fmt.Errorf("%w: goalie line seq=%d has game_id=%d role=%q", ErrJoinMismatch, line.Seq, line.GameID, line.Role)
		}
		toiSeconds, toiErr := ParseTOISeconds(line.TOI)
		if toiErr != nil {
			toiSeconds = 0
		}
		k := sideKey{gameID: line.GameID, role: line.Role}
		agg, ok := goalieAggs[k]
		if !ok {
			agg = &goalieAggregate{}
			goalieAggs[k] = agg
		}
		agg.add(line, toiSeconds)
		gameIDs[line.GameID] = struct{}{}
	}

	winners, err := s.loadWinners(ctx)
	if err != nil {
		return dataset.Matrix{}, result, err
	}

	ids := make([]int64, 0, len(gameIDs))
	for id := range gameIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	skaterWidth := len(dataset.SkaterColumns())
	goalieWidth := len(dataset.GoalieColumns())
	rows := make([]dataset.FeatureRow, 0, len(ids))
	for _, id := range ids {
		cells := make([]dataset.Value, 0, 2*skaterWidth+2*goalieWidth)
		oneSided := false
		for _, role := range []homeoraway.Role{homeoraway.Home, homeoraway.Away} {
			if agg, ok := skaterAggs[sideKey{gameID: id, role: role}]; ok {
				cells = append(cells, agg.cells()...)
			} else {
				cells = append(cells, nullCells(skaterWidth)...)
				oneSided = true
			}
		}
		for _, role := range []homeoraway.Role{homeoraway.Home, homeoraway.Away} {
			if agg, ok := goalieAggs[sideKey{gameID: id, role: role}]; ok {
				cells = append(cells, agg.cells()...)
			} else {
				cells = append(cells, nullCells(goalieWidth)...)
				oneSided = true
			}
		}
		if oneSided {
			result.OneSidedGames++
		}

		label, ok := winners[id]
		if !ok || label == game.WinnerNone {
			result.UnlabeledGames++
			s.logger.WarnContext(ctx, "feature row has no winner label", "game_id", id)
		}
		rows = append(rows, dataset.FeatureRow{
			GameID: id,
			Cells:  cells,
			Label:  string(label),
		})
	}
	result.Rows = len(rows)

	s.logger.InfoContext(ctx, "summarize run finished",
		"rows", result.Rows,
		"duplicates_collapsed", result.DuplicatesCollapsed,
		"one_sided_games", result.OneSidedGames,
		"unlabeled_games", result.UnlabeledGames,
		"save_anomalies", result.SaveAnomalies,
	)
	return dataset.Matrix{Header: dataset.Header(), Rows: rows}, result, nil
}

func (s *SummarizerService) loadWinners(ctx context.Context) (map[int64]game.Winner, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make(map[int64]game.Winner, len(games))
	for _, item := range games {
		out[item.ID] = item.Winner
	}
	return out, nil
}
