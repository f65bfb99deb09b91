// Package generator implements the schedule local-search engine on top of
// the identifier map and interval algebra in package domain: the
// driving-time matrix, mutation operators, neighbor strategy, and scoring
// described by the project's schedule engine specification. It is the one package in this module
// that is meant to be invoked millions of times per optimization run, so
// every exported operation here avoids anything heavier than the
// allocation its copy-on-write contract requires.
package generator

import (
	"fmt"
	"maps"
	"math/rand"
	"slices"

	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/ports"
)

// TerminalWindow is the opening window of one terminal, as supplied to
// New.
type TerminalWindow struct {
	Open  domain.Time
	Close domain.Time
}

// TruckInput is one truck's construction-time data. Unlike domain.TruckData
// it carries no StartTime: every truck's effective start time is the
// beginning of the planning period, since the external construction
// surface (matching §6 of the specification) has no per-truck start time
// field of its own.
type TruckInput struct {
	StartingTerminal string
	MaxWeightKg      int
	MaxTEU           int
}

// BookingInput is one delivery request as supplied to New, before windows
// are intersected against terminal hours and the planning period.
type BookingInput struct {
	CargoID         string
	WeightKg        int
	TEU             int
	From            string
	To              string
	PickupOpenTime  domain.Time
	PickupCloseTime domain.Time
	DropoffOpenTime domain.Time
	DropoffCloseTime domain.Time
}

// Generator holds everything immutable for one planning run plus the two
// pieces of writable state the run needs: a seedable random engine and a
// driving-time cache. It is not safe for concurrent use: the random engine
// and cache are mutated in place by GetScheduleNeighbour and
// SetDrivingTimes.
type Generator struct {
	terminals *domain.IdentifierMap[domain.TerminalID]
	cargo     *domain.IdentifierMap[domain.CargoID]
	trucks    *domain.IdentifierMap[domain.TruckID]

	truckData map[domain.TruckID]domain.TruckData
	bookings  map[domain.CargoID]domain.BookingInfo

	pickupWindows  map[domain.CargoID]domain.IntervalChain
	dropoffWindows map[domain.CargoID]domain.IntervalChain

	// fromTo indexes kept bookings by (from terminal, to terminal), so a
	// mutation operator can find candidate cargo for a given pair of
	// checkpoint terminals without scanning every booking.
	fromTo map[[2]domain.TerminalID]domain.CargoSet

	terminalOpen map[domain.TerminalID]domain.IntervalChain
	// activeTerminals holds only the terminals referenced by a kept
	// booking, per §6 preprocessing step 4; terminal_data entries that
	// survive interning but back no surviving booking are excluded.
	activeTerminals map[domain.TerminalID]struct{}

	planningPeriod domain.Interval

	drivingTimes ports.DrivingTimeCache

	rng *rand.Rand
}

// New constructs a Generator, running the §6 preprocessing pipeline:
// interning ids, building per-terminal opening chains, intersecting each
// booking's requested windows against terminal hours and the planning
// period, and dropping any booking whose effective pickup or dropoff
// window collapses to empty.
func New(
	terminalData map[string]TerminalWindow,
	truckData map[string]TruckInput,
	bookingData []BookingInput,
	planningStart, planningEnd domain.Time,
) (*Generator, error) {
	planningPeriod, ok := domain.NewPlainInterval(planningStart, planningEnd)
	if !ok {
		return nil, fmt.Errorf("new generator: invalid planning period [%d, %d)", planningStart, planningEnd)
	}

	g := &Generator{
		terminals:       domain.NewIdentifierMap[domain.TerminalID](),
		cargo:           domain.NewIdentifierMap[domain.CargoID](),
		trucks:          domain.NewIdentifierMap[domain.TruckID](),
		truckData:       make(map[domain.TruckID]domain.TruckData, len(truckData)),
		bookings:        make(map[domain.CargoID]domain.BookingInfo, len(bookingData)),
		pickupWindows:   make(map[domain.CargoID]domain.IntervalChain, len(bookingData)),
		dropoffWindows:  make(map[domain.CargoID]domain.IntervalChain, len(bookingData)),
		fromTo:          make(map[[2]domain.TerminalID]domain.CargoSet),
		terminalOpen:    make(map[domain.TerminalID]domain.IntervalChain, len(terminalData)),
		activeTerminals: make(map[domain.TerminalID]struct{}),
		planningPeriod:  planningPeriod,
		drivingTimes:    newMemoryDrivingTimeCache(),
		rng:             rand.New(rand.NewSource(0)),
	}

	for _, external := range slices.Sorted(maps.Keys(terminalData)) {
		window := terminalData[external]
		id := g.terminals.AddOrFind(external)
		iv, ok := domain.NewPlainInterval(window.Open, window.Close)
		if !ok {
			return nil, fmt.Errorf("new generator: invalid opening window for terminal %q: [%d, %d)", external, window.Open, window.Close)
		}
		g.terminalOpen[id] = domain.ChainFromInterval(iv)
	}

	for _, external := range slices.Sorted(maps.Keys(truckData)) {
		truck := truckData[external]
		id := g.trucks.AddOrFind(external)
		startTerminal := g.terminals.AddOrFind(truck.StartingTerminal)
		g.truckData[id] = domain.TruckData{
			StartingTerminal: startTerminal,
			StartTime:        planningStart,
			MaxWeightKg:      truck.MaxWeightKg,
			MaxTEU:           truck.MaxTEU,
		}
	}

	for _, b := range bookingData {
		if err := g.addBooking(b); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Generator) addBooking(b BookingInput) error {
	pickupRequested, ok := domain.NewPlainInterval(b.PickupOpenTime, b.PickupCloseTime)
	if !ok {
		return fmt.Errorf("new generator: invalid pickup window for cargo %q: [%d, %d)", b.CargoID, b.PickupOpenTime, b.PickupCloseTime)
	}
	dropoffRequested, ok := domain.NewPlainInterval(b.DropoffOpenTime, b.DropoffCloseTime)
	if !ok {
		return fmt.Errorf("new generator: invalid dropoff window for cargo %q: [%d, %d)", b.CargoID, b.DropoffOpenTime, b.DropoffCloseTime)
	}

	from := g.terminals.AddOrFind(b.From)
	to := g.terminals.AddOrFind(b.To)

	pickupWindow := domain.IntersectAll([]domain.IntervalChain{
		domain.ChainFromInterval(pickupRequested),
		g.terminalOpen[from],
		domain.ChainFromInterval(g.planningPeriod),
	})
	if pickupWindow.IsEmpty() {
		return nil
	}

	dropoffWindow := domain.IntersectAll([]domain.IntervalChain{
		domain.ChainFromInterval(dropoffRequested),
		g.terminalOpen[to],
		domain.ChainFromInterval(g.planningPeriod),
	})
	if dropoffWindow.IsEmpty() {
		return nil
	}

	cargoID := g.cargo.AddOrFind(b.CargoID)
	g.bookings[cargoID] = domain.BookingInfo{From: from, To: to, WeightKg: b.WeightKg, TEU: b.TEU}
	g.pickupWindows[cargoID] = pickupWindow
	g.dropoffWindows[cargoID] = dropoffWindow

	g.activeTerminals[from] = struct{}{}
	g.activeTerminals[to] = struct{}{}

	key := [2]domain.TerminalID{from, to}
	set, ok := g.fromTo[key]
	if !ok {
		set = domain.NewCargoSet()
	}
	g.fromTo[key] = set.With(cargoID)

	return nil
}

// UseDrivingTimeCache swaps the generator's driving-time store for an
// externally supplied one (e.g. the sqlite- or redis-backed adapters in
// internal/adapters/drivingtimecache), instead of the in-memory default New
// installs. It must be called before any mutation is attempted.
func (g *Generator) UseDrivingTimeCache(cache ports.DrivingTimeCache) {
	g.drivingTimes = cache
}

func (g *Generator) drive(from, to domain.TerminalID) domain.NonNegativeTimeDelta {
	dt, ok := g.drivingTimes.Get(from, to)
	if !ok {
		domain.UnknownDrivingTime(from, to)
	}
	return dt
}
