package player

// Player is one row of the roster table, keyed by the provider's player id.
// A row exists only for active players; the builder deletes players the
// provider reports as inactive.
type Player struct {
	ID            int64
	FirstName     string
	LastName      string
	CurrentTeamID int64
	HeightCm      int
	WeightKg      int
	Active        bool
}

func (p Player) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
