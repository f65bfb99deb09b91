package domain

// Time is a point in the planning horizon, in seconds. Always non-negative.
type Time int64

// TimeDelta is a signed duration in seconds.
type TimeDelta int64

// NonNegativeTimeDelta is a duration in seconds that is never negative,
// e.g. a driving time or the accumulated driving time of a truck.
type NonNegativeTimeDelta int64

// TerminalID, CargoID and TruckID are distinct nominal handle types over a
// dense, non-negative integer index. Keeping them as separate defined types
// (rather than plain int) means the compiler rejects passing a CargoID where
// a TerminalID is expected, catching the class of bug where a truck gets
// assigned to a cargo by mistake.
type TerminalID int

type CargoID int

type TruckID int
