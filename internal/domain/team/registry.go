package team

// Registry returns the fixed set of franchise abbreviations the builder walks
// for every season. The provider keys club schedules by these codes.
func Registry() []string {
	return []string{
		"ANA", "BOS", "BUF", "CAR", "CBJ", "CGY", "CHI", "COL",
		"DAL", "DET", "EDM", "FLA", "LAK", "MIN", "MTL", "NJD",
		"NSH", "NYI", "NYR", "OTT", "PHI", "PIT", "SEA", "SJS",
		"STL", "TBL", "TOR", "UTA", "VAN", "VGK", "WPG", "WSH",
	}
}
