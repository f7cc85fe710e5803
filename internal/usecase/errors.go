package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrRosterUnpublished marks a box score whose per-player stats have not
	// been published yet. It is a recoverable no-op for the builder, never a
	// run failure.
	ErrRosterUnpublished = errors.New("roster not published")

	// ErrBadStatFormat marks a compound stat string that does not parse.
	// It indicates a provider contract change and must surface loudly:
	// defaulting it would corrupt the aggregation silently.
	ErrBadStatFormat = errors.New("malformed stat value")

	// ErrJoinMismatch marks stat rows whose game id falls outside the games
	// table's key domain. Detecting it beats emitting an all-null column.
	ErrJoinMismatch = errors.New("join key mismatch")
)
