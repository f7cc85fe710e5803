package dataset

// Version identifies the published column layout. Bump it whenever a column
// is added, removed, or reordered; downstream models pin against it.
const Version = "v1"

// LabelColumn is the trailing outcome column: "home", "away", or empty when
// the winner is not yet known.
const LabelColumn = "winnerHomeOrAway"

// SkaterColumns lists the per-side skater aggregate columns, in output order.
// Counting stats are plain sums. faceoffPct is time-on-ice weighted and
// toiSeconds is the team total, so neither is a naive per-player sum.
func SkaterColumns() []string {
	return []string{
		"goals",
		"assists",
		"points",
		"plusMinus",
		"hits",
		"powerPlayGoals",
		"sog",
		"blockedShots",
		"shifts",
		"giveaways",
		"takeaways",
		"faceoffPct",
		"toiSeconds",
	}
}

// GoalieColumns lists the per-side goalie aggregate columns, in output order.
// savePct is recomputed from the summed saves/shots columns rather than
// averaged across goalies.
func GoalieColumns() []string {
	return []string{
		"evenStrengthSavesAgainst",
		"evenStrengthShotsAgainst",
		"powerPlaySavesAgainst",
		"powerPlayShotsAgainst",
		"shorthandedSavesAgainst",
		"shorthandedShotsAgainst",
		"saveSavesAgainst",
		"saveShotsAgainst",
		"evenStrengthGoalsAgainst",
		"powerPlayGoalsAgainst",
		"shorthandedGoalsAgainst",
		"pim",
		"goalsAgainst",
		"shotsAgainst",
		"saves",
		"savePct",
		"toiSeconds",
	}
}

// Header returns the full published column list: gameId, then the four
// prefixed blocks (home/away x skater/goalie), then the label.
func Header() []string {
	out := make([]string, 0, 2+2*len(SkaterColumns())+2*len(GoalieColumns()))
	out = append(out, "gameId")
	for _, side := range []string{"home", "away"} {
		for _, name := range SkaterColumns() {
			out = append(out, side+"_skater_"+title(name))
		}
	}
	for _, side := range []string{"home", "away"} {
		for _, name := range GoalieColumns() {
			out = append(out, side+"_goalie_"+title(name))
		}
	}
	out = append(out, LabelColumn)
	return out
}

func title(name string) string {
	if name == "" {
		return name
	}
	head := name[0]
	if head >= 'a' && head <= 'z' {
		head = head - 'a' + 'A'
	}
	return string(head) + name[1:]
}

// Value is one nullable cell. An outer join leaves cells invalid when a game
// has data for only one side.
type Value struct {
	Float64 float64
	Valid   bool
}

func Float(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// FeatureRow is one game's aggregated statistics. Cells follows the Header
// order minus the leading gameId and trailing label columns.
type FeatureRow struct {
	GameID int64
	Cells  []Value
	Label  string
}

// Matrix is the Aggregator output: a rectangular table with a fixed header,
// one row per eligible game, sorted by game id.
type Matrix struct {
	Header []string
	Rows   []FeatureRow
}
