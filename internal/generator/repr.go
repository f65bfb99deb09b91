package generator

import (
	"fmt"
	"strings"

	"chameleon-scheduler/internal/domain"
)

// ScheduleTuple is one row of the flattened representation ToListOfTuples
// produces: a single pickup or dropoff event, identified by external ids
// so a caller outside this module never needs access to the generator's
// identifier maps.
type ScheduleTuple struct {
	TruckID    string
	Time       domain.Time
	TerminalID string
	CargoID    string
	PickedUp   bool
}

// ToListOfTuples flattens a schedule for external consumers: one tuple per
// pickup (PickedUp=true) and one per dropoff (PickedUp=false), in truck
// then checkpoint-time order.
func (g *Generator) ToListOfTuples(s *domain.Schedule) []ScheduleTuple {
	out := make([]ScheduleTuple, 0)
	for t := 0; t < g.numTrucks(); t++ {
		truck := domain.TruckID(t)
		truckExternal := g.externalTruck(truck)

		for _, cp := range s.TruckCheckpoints[truck] {
			terminalExternal := g.externalTerminal(cp.Terminal)

			for _, cargo := range cp.PickupCargo.Sorted() {
				out = append(out, ScheduleTuple{
					TruckID:    truckExternal,
					Time:       cp.Time,
					TerminalID: terminalExternal,
					CargoID:    g.externalCargo(cargo),
					PickedUp:   true,
				})
			}
			for _, cargo := range cp.DropoffCargo.Sorted() {
				out = append(out, ScheduleTuple{
					TruckID:    truckExternal,
					Time:       cp.Time,
					TerminalID: terminalExternal,
					CargoID:    g.externalCargo(cargo),
					PickedUp:   false,
				})
			}
		}
	}
	return out
}

// Repr renders a human-readable dump of s: one block per truck in ascending
// truck order, checkpoints ordered by time within each block, and a blank
// line between trucks.
func (g *Generator) Repr(s *domain.Schedule) string {
	var b strings.Builder

	for t := 0; t < g.numTrucks(); t++ {
		truck := domain.TruckID(t)
		if t > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "truck %s:\n", g.externalTruck(truck))

		checkpoints := s.TruckCheckpoints[truck]
		if len(checkpoints) == 0 {
			b.WriteString("  (no checkpoints)\n")
			continue
		}

		for _, cp := range checkpoints {
			fmt.Fprintf(&b, "  t=%d terminal=%s pickup=%s dropoff=%s available_teu=%d available_weight_kg=%d\n",
				cp.Time,
				g.externalTerminal(cp.Terminal),
				g.externalCargoList(cp.PickupCargo.Sorted()),
				g.externalCargoList(cp.DropoffCargo.Sorted()),
				cp.AvailableTEU,
				cp.AvailableWeightKg,
			)
		}
	}

	return b.String()
}

func (g *Generator) externalTruck(id domain.TruckID) string {
	external, ok := g.trucks.External(id)
	if !ok {
		domain.UnknownHandle(id)
	}
	return external
}

func (g *Generator) externalTerminal(id domain.TerminalID) string {
	external, ok := g.terminals.External(id)
	if !ok {
		domain.UnknownHandle(id)
	}
	return external
}

func (g *Generator) externalCargo(id domain.CargoID) string {
	external, ok := g.cargo.External(id)
	if !ok {
		domain.UnknownHandle(id)
	}
	return external
}

func (g *Generator) externalCargoList(ids []domain.CargoID) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = g.externalCargo(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
