package homeoraway

// Role is the side a team played on for a given game.
type Role string

const (
	Home Role = "home"
	Away Role = "away"
)

func (r Role) Valid() bool {
	return r == Home || r == Away
}
