package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MattRWallace/NHLPredictor/internal/domain/goaliestats"
	"github.com/MattRWallace/NHLPredictor/internal/domain/homeoraway"
	"github.com/MattRWallace/NHLPredictor/internal/domain/skaterstats"
)

// NormalizedGoalieLine is a goalie stat line after the compound
// "saves/shots" fields have been split into typed columns. TOI and Decision
// stay text: TOI is a clock value and is only parsed where a weighting
// policy needs seconds.
type NormalizedGoalieLine struct {
	Seq      int64
	GameID   int64
	PlayerID int64
	TeamID   int64
	Role     homeoraway.Role

	EvenStrengthSavesAgainst int
	EvenStrengthShotsAgainst int
	PowerPlaySavesAgainst    int
	PowerPlayShotsAgainst    int
	ShorthandedSavesAgainst  int
	ShorthandedShotsAgainst  int
	SaveSavesAgainst         int
	SaveShotsAgainst         int

	EvenStrengthGoalsAgainst int
	PowerPlayGoalsAgainst    int
	ShorthandedGoalsAgainst  int
	PIM                      int
	GoalsAgainst             int
	ShotsAgainst             int
	Saves                    int

	TOI      string
	Starter  bool
	Decision string
}

// DedupeSkaterLines collapses duplicate (game, player) rows, keeping the
// first occurrence. Lines are pre-sorted by sequence number so "first" is
// deterministic regardless of store iteration order. Back-filling can
// deliver the same box score twice, hence the duplicates.
func DedupeSkaterLines(lines []skaterstats.Line) []skaterstats.Line {
	sorted := make([]skaterstats.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	type key struct{ gameID, playerID int64 }
	seen := make(map[key]struct{}, len(sorted))
	out := sorted[:0]
	for _, line := range sorted {
		k := key{line.GameID, line.PlayerID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, line)
	}
	return out
}

// DedupeGoalieLines is DedupeSkaterLines for the goalie table.
func DedupeGoalieLines(lines []goaliestats.Line) []goaliestats.Line {
	sorted := make([]goaliestats.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	type key struct{ gameID, playerID int64 }
	seen := make(map[key]struct{}, len(sorted))
	out := sorted[:0]
	for _, line := range sorted {
		k := key{line.GameID, line.PlayerID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, line)
	}
	return out
}

// SplitShotsAgainst parses a compound "<saves>/<shots>" value. Anything but
// exactly two integer halves fails with ErrBadStatFormat: a malformed value
// means the provider contract changed, and defaulting it would poison the
// sums downstream. saves > shots is structurally valid and left to the
// caller's sanity check.
func SplitShotsAgainst(value string) (saves, shots int, err error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected one separator in %q", ErrBadStatFormat, value)
	}

	saves, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: saves side of %q is not numeric", ErrBadStatFormat, value)
	}
	shots, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: shots side of %q is not numeric", ErrBadStatFormat, value)
	}

	return saves, shots, nil
}

// NormalizeGoalieLines splits the four situational compound fields of every
// line. It returns the count of lines where saves exceed shots: those are
// accepted (the invariant saves <= shots is a provider promise, not ours)
// but reported as data anomalies.
func NormalizeGoalieLines(lines []goaliestats.Line) ([]NormalizedGoalieLine, int, error) {
	out := make([]NormalizedGoalieLine, 0, len(lines))
	anomalies := 0

	for _, line := range lines {
		item := NormalizedGoalieLine{
			Seq:                      line.Seq,
			GameID:                   line.GameID,
			PlayerID:                 line.PlayerID,
			TeamID:                   line.TeamID,
			Role:                     line.Role,
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

		fields := []struct {
			value string
			saves *int
			shots *int
		}{
			{line.EvenStrengthShotsAgainst, &item.EvenStrengthSavesAgainst, &item.EvenStrengthShotsAgainst},
			{line.PowerPlayShotsAgainst, &item.PowerPlaySavesAgainst, &item.PowerPlayShotsAgainst},
			{line.ShorthandedShotsAgainst, &item.ShorthandedSavesAgainst, &item.ShorthandedShotsAgainst},
			{line.SaveShotsAgainst, &item.SaveSavesAgainst, &item.SaveShotsAgainst},
		}
		for _, field := range fields {
			saves, shots, err := SplitShotsAgainst(field.value)
			if err != nil {
				return nil, anomalies, fmt.Errorf("goalie line seq=%d game_id=%d player_id=%d: %w", line.Seq, line.GameID, line.PlayerID, err)
			}
			if saves > shots {
				anomalies++
			}
			*field.saves = saves
			*field.shots = shots
		}

		out = append(out, item)
	}

	return out, anomalies, nil
}

// ParseTOISeconds converts a clock-formatted "MM:SS" time-on-ice value to
// seconds. The minutes part can exceed 59 for goalies in overtime games.
func ParseTOISeconds(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: expected MM:SS, got %q", ErrBadStatFormat, value)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: minutes side of %q is not numeric", ErrBadStatFormat, value)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: seconds side of %q is out of range", ErrBadStatFormat, value)
	}
	return minutes*60 + seconds, nil
}
