package game

import "testing"

func TestGameType_IsSupported(t *testing.T) {
	t.Parallel()

	supported := map[GameType]bool{
		TypePreseason:     false,
		TypeRegularSeason: true,
		TypePlayoff:       true,
		TypeAllStar:       false,
		GameType(99):      false,
	}
	for gt, want := range supported {
		if got := gt.IsSupported(); got != want {
			t.Fatalf("%v.IsSupported() = %v, want %v", gt, got, want)
		}
	}
}

func TestParseState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want GameState
	}{
		{"FUT", StateFuture},
		{"PRE", StatePregame},
		{"LIVE", StateLive},
		{"FINAL", StateFinal},
		{"OFF", StateOfficial},
		{"", StateFuture},
		{"bogus", StateFuture},
	}
	for _, tc := range tests {
		if got := ParseState(tc.code); got != tc.want {
			t.Fatalf("ParseState(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}

	for _, tc := range tests {
		eligible := tc.want == StateOfficial
		if got := tc.want.IsDatasetEligible(); got != eligible {
			t.Fatalf("%v.IsDatasetEligible() = %v", tc.want, got)
		}
	}
}

func TestDeriveWinner(t *testing.T) {
	t.Parallel()

	score := func(v int) *int { return &v }

	if got := DeriveWinner(score(5), score(2)); got != WinnerHome {
		t.Fatalf("home win: got %q", got)
	}
	if got := DeriveWinner(score(1), score(4)); got != WinnerAway {
		t.Fatalf("away win: got %q", got)
	}
	if got := DeriveWinner(score(3), score(3)); got != WinnerNone {
		t.Fatalf("tie: got %q", got)
	}
	if got := DeriveWinner(nil, score(3)); got != WinnerNone {
		t.Fatalf("missing home score: got %q", got)
	}
	if got := DeriveWinner(score(3), nil); got != WinnerNone {
		t.Fatalf("missing away score: got %q", got)
	}
}
