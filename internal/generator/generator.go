package generator

import (
	"context"
	"fmt"

	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/ports"
)

// NewFromProblemInstance builds a Generator from a ports.ProblemInstance
// (terminal windows, trucks, bookings, and driving times keyed by external
// id), the shape a ports.ProblemRepository hands back. It is the
// reconstruction counterpart to New: where New takes construction input in
// the caller's own types, this takes the repository's stored snapshot of
// the same data.
func NewFromProblemInstance(instance ports.ProblemInstance, planningStart, planningEnd domain.Time) (*Generator, error) {
	terminals := make(map[string]TerminalWindow, len(instance.Terminals))
	for id, w := range instance.Terminals {
		terminals[id] = TerminalWindow{Open: w.Open, Close: w.Close}
	}

	trucks := make(map[string]TruckInput, len(instance.Trucks))
	for id, t := range instance.Trucks {
		trucks[id] = TruckInput{StartingTerminal: t.StartingTerminal, MaxWeightKg: t.MaxWeightKg, MaxTEU: t.MaxTEU}
	}

	bookings := make([]BookingInput, len(instance.Bookings))
	for i, b := range instance.Bookings {
		bookings[i] = BookingInput{
			CargoID: b.CargoID, WeightKg: b.WeightKg, TEU: b.TEU,
			From: b.From, To: b.To,
			PickupOpenTime: b.PickupOpenTime, PickupCloseTime: b.PickupCloseTime,
			DropoffOpenTime: b.DropoffOpenTime, DropoffCloseTime: b.DropoffCloseTime,
		}
	}

	g, err := New(terminals, trucks, bookings, planningStart, planningEnd)
	if err != nil {
		return nil, fmt.Errorf("new generator from problem instance: %w", err)
	}

	if len(instance.DrivingTimes) > 0 {
		order := g.GetTerminalIDs()
		index := make(map[string]int, len(order))
		for i, id := range order {
			index[id] = i
		}
		matrix := make([][]domain.NonNegativeTimeDelta, len(order))
		for i := range matrix {
			matrix[i] = make([]domain.NonNegativeTimeDelta, len(order))
		}
		for pair, dt := range instance.DrivingTimes {
			i, ok1 := index[pair[0]]
			j, ok2 := index[pair[1]]
			if !ok1 || !ok2 {
				continue
			}
			matrix[i][j] = dt
		}
		if err := g.SetDrivingTimes(context.Background(), order, matrix); err != nil {
			return nil, fmt.Errorf("new generator from problem instance: %w", err)
		}
	}

	return g, nil
}

// EmptySchedule returns a Schedule with every known truck present and
// empty, and all cached driving times at zero.
func (g *Generator) EmptySchedule() *domain.Schedule {
	s := &domain.Schedule{
		TruckCheckpoints:    make(map[domain.TruckID][]domain.Checkpoint, len(g.truckData)),
		ScheduledCargoTruck: make(map[domain.CargoID]domain.TruckID),
		TruckDrivingTimes:   make(map[domain.TruckID]domain.NonNegativeTimeDelta, len(g.truckData)),
	}
	for truck := range g.truckData {
		s.TruckCheckpoints[truck] = nil
		s.TruckDrivingTimes[truck] = 0
	}
	return s
}

// Seed reseeds the generator's random engine, for reproducible runs.
func (g *Generator) Seed(seed uint64) {
	g.rng = newSeededRand(seed)
}

// SetDrivingTimes replaces the generator's driving-time cache wholesale
// with the matrix described by terminalOrder (row/column labels) and
// matrix (matrix[i][j] = drive time from terminalOrder[i] to
// terminalOrder[j]). Every entry must be non-negative; terminals not
// already known are interned as a side effect, matching how the embedding
// boundary is expected to call this ahead of any mutation. Only the
// built-in default cache is emptied first; a cache installed with
// UseDrivingTimeCache keeps any pairs the matrix does not overwrite.
func (g *Generator) SetDrivingTimes(ctx context.Context, terminalOrder []string, matrix [][]domain.NonNegativeTimeDelta) error {
	if len(matrix) != len(terminalOrder) {
		return fmt.Errorf("set driving times: matrix has %d rows, want %d", len(matrix), len(terminalOrder))
	}

	ids := make([]domain.TerminalID, len(terminalOrder))
	for i, external := range terminalOrder {
		ids[i] = g.terminals.AddOrFind(external)
	}

	if mc, ok := g.drivingTimes.(*memoryDrivingTimeCache); ok {
		mc.clear()
	}

	for i, row := range matrix {
		if len(row) != len(terminalOrder) {
			return fmt.Errorf("set driving times: row %d has %d entries, want %d", i, len(row), len(terminalOrder))
		}
		for j, dt := range row {
			if err := g.drivingTimes.Set(ctx, ids[i], ids[j], dt); err != nil {
				return fmt.Errorf("set driving times: store (%s, %s): %w", terminalOrder[i], terminalOrder[j], err)
			}
		}
	}

	return nil
}

// GetTerminalIDs enumerates the external ids of every terminal referenced
// by a booking that survived construction, suitable for a caller building
// a matching driving-time matrix to hand to SetDrivingTimes.
func (g *Generator) GetTerminalIDs() []string {
	out := make([]string, 0, len(g.activeTerminals))
	for id := range g.activeTerminals {
		external, ok := g.terminals.External(id)
		if !ok {
			domain.UnknownHandle(id)
		}
		out = append(out, external)
	}
	return out
}
