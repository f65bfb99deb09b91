package ports

import (
	"context"

	"chameleon-scheduler/internal/domain"
)

// DrivingTimeCache is the contract a generator uses to resolve driving times
// between terminals. The matrix is asymmetric and is expected to be
// complete for every ordered pair of terminals appearing in a problem
// instance before a generator is built; a lookup miss is reported to the
// caller rather than panicking, since unlike Get (used inside the hot
// mutation loop) construction-time population can reasonably fail and
// recover.
type DrivingTimeCache interface {
	// Get returns the driving time from -> to. ok is false when the pair has
	// never been set.
	Get(from, to domain.TerminalID) (domain.NonNegativeTimeDelta, bool)

	// Set records the driving time from -> to, overwriting any previous
	// value for the pair.
	Set(ctx context.Context, from, to domain.TerminalID, dt domain.NonNegativeTimeDelta) error

	// Pairs returns every (from, to) pair currently populated, for
	// diagnostics and for verifying matrix completeness at construction time.
	Pairs(ctx context.Context) ([][2]domain.TerminalID, error)
}
