package ports

import (
	"context"

	"chameleon-scheduler/internal/domain"
)

// TerminalSeed is one terminal's opening window, keyed by its external id
// in the instance that owns it.
type TerminalSeed struct {
	Open  domain.Time
	Close domain.Time
}

// TruckSeed is one truck's construction-time data, referencing its
// starting terminal by external id.
type TruckSeed struct {
	StartingTerminal string
	MaxWeightKg      int
	MaxTEU           int
}

// BookingSeed is one delivery request, referencing its pickup/dropoff
// terminals by external id, before construction intersects its windows
// against terminal hours and the planning period.
type BookingSeed struct {
	CargoID          string
	WeightKg         int
	TEU              int
	From             string
	To               string
	PickupOpenTime   domain.Time
	PickupCloseTime  domain.Time
	DropoffOpenTime  domain.Time
	DropoffCloseTime domain.Time
}

// ProblemInstance is everything a generator needs to construct a fresh
// planning run: the raw, pre-interning construction inputs of §6 (terminal
// windows, trucks, bookings) plus the driving-time matrix between every
// terminal pair, addressed by external id so the instance is portable
// across generator runs rather than tied to one run's interned handles.
type ProblemInstance struct {
	Terminals    map[string]TerminalSeed
	Trucks       map[string]TruckSeed
	Bookings     []BookingSeed
	DrivingTimes map[[2]string]domain.NonNegativeTimeDelta
}

// ProblemRepository loads and stores problem instances, keyed by an opaque
// run identifier assigned by the caller (the commands take it from RUN_ID
// or --run-id, "demo" by default).
type ProblemRepository interface {
	Load(ctx context.Context, runID string) (ProblemInstance, error)
	Save(ctx context.Context, runID string, instance ProblemInstance) error
}
