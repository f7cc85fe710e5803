package game

// GameType matches the provider's numeric game-type codes.
type GameType int

const (
	TypePreseason     GameType = 1
	TypeRegularSeason GameType = 2
	TypePlayoff       GameType = 3
	TypeAllStar       GameType = 4
)

func (t GameType) String() string {
	switch t {
	case TypePreseason:
		return "preseason"
	case TypeRegularSeason:
		return "regular-season"
	case TypePlayoff:
		return "playoff"
	case TypeAllStar:
		return "all-star"
	default:
		return "unknown"
	}
}

// IsSupported reports whether a game of this type belongs in the dataset.
// Preseason and all-star games are excluded before any box-score fetch.
func (t GameType) IsSupported() bool {
	return t == TypeRegularSeason || t == TypePlayoff
}

// GameState is the provider's publication lifecycle for a game. The order of
// the constants follows the lifecycle: a state never moves backwards.
type GameState int

const (
	StateFuture GameState = iota + 1
	StatePregame
	StateLive
	StateFinal
	StateOfficial
)

const (
	stateCodeFuture   = "FUT"
	stateCodePregame  = "PRE"
	stateCodeLive     = "LIVE"
	stateCodeFinal    = "FINAL"
	stateCodeOfficial = "OFF"
)

// ParseState maps a provider state code to a GameState. Unknown and empty
// codes map to StateFuture; callers that need to distinguish an absent code
// from a genuine FUT must check the raw payload before parsing.
func ParseState(code string) GameState {
	switch code {
	case stateCodePregame:
		return StatePregame
	case stateCodeLive:
		return StateLive
	case stateCodeFinal:
		return StateFinal
	case stateCodeOfficial:
		return StateOfficial
	default:
		return StateFuture
	}
}

func (s GameState) String() string {
	switch s {
	case StateFuture:
		return stateCodeFuture
	case StatePregame:
		return stateCodePregame
	case StateLive:
		return stateCodeLive
	case StateFinal:
		return stateCodeFinal
	case StateOfficial:
		return stateCodeOfficial
	default:
		return "unknown"
	}
}

// IsDatasetEligible reports whether stats for a game in this state are stable
// enough to extract. Only officially scored games qualify.
func (s GameState) IsDatasetEligible() bool {
	return s == StateOfficial
}

// Winner identifies which side won a game, if known.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
)

// Game is one row of the games table, keyed by the provider's game id. The
// builder upserts the row whenever it observes the game, so State tracks the
// provider lifecycle across runs. StatsIngested flips to true only once the
// game's stat lines have landed; rows where it is still false get re-examined
// on the next run. A roster-unpublished game is Official without stat lines,
// so existence alone does not mean the game is done.
type Game struct {
	ID            int64
	Season        string
	Type          GameType
	State         GameState
	HomeTeamID    int64
	AwayTeamID    int64
	Winner        Winner
	StatsIngested bool
}

// DeriveWinner compares final scores. Nil or equal scores yield WinnerNone;
// regulation NHL games cannot tie, so an equal score means incomplete data.
func DeriveWinner(homeScore, awayScore *int) Winner {
	if homeScore == nil || awayScore == nil {
		return WinnerNone
	}
	switch {
	case *homeScore > *awayScore:
		return WinnerHome
	case *awayScore > *homeScore:
		return WinnerAway
	default:
		return WinnerNone
	}
}
