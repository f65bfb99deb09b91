package domain

import "fmt"

// InvariantViolation panics to report a broken schedule invariant. Every
// caller of a mutation operator in the generator package is expected to
// leave the schedule in a state where these never fire; tripping one means
// a bug in the generator, not a reachable runtime condition, so it is not
// modeled as an error return.
func InvariantViolation(format string, args ...any) {
	panic(fmt.Sprintf("schedule invariant violated: "+format, args...))
}

// UnknownDrivingTime panics when a driving-time lookup is attempted for a
// terminal pair the cache was never populated with. The driving-time matrix
// is expected to be complete for every pair of terminals appearing in the
// problem instance before a generator is constructed, so a miss here is a
// caller error, not a recoverable one.
func UnknownDrivingTime(from, to TerminalID) {
	panic(fmt.Sprintf("no driving time known from terminal %d to terminal %d", from, to))
}

// UnknownHandle panics when an internal handle has no corresponding external
// id in an IdentifierMap. Internal handles are only ever minted by AddOrFind,
// so this also signals a caller error.
func UnknownHandle(handle any) {
	panic(fmt.Sprintf("no external id registered for handle %v", handle))
}
