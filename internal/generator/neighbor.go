package generator

import "chameleon-scheduler/internal/domain"

// operator tags the four mutation kinds so the neighbor strategy can
// dispatch by index while drawing uniformly among them, per §4.9 of the
// schedule engine specification.
type operator int

const (
	opRemoveCheckpoint operator = iota
	opAddCheckpoint
	opRemoveDelivery
	opAddDelivery
	numOperators
)

func (g *Generator) apply(op operator, s *domain.Schedule) (*domain.Schedule, bool) {
	switch op {
	case opRemoveCheckpoint:
		return g.RemoveCheckpoint(s)
	case opAddCheckpoint:
		return g.AddCheckpoint(s)
	case opRemoveDelivery:
		return g.RemoveDelivery(s)
	case opAddDelivery:
		return g.AddDelivery(s)
	default:
		domain.InvariantViolation("neighbor strategy: unknown operator %d", op)
		return nil, false
	}
}

// GetScheduleNeighbour draws an operator uniformly from the four mutation
// kinds, retries it up to numTriesPerAction times, and re-draws on
// exhaustion. It never returns without a new schedule: callers must only
// invoke it on instances where at least one operator can eventually
// succeed, since there is no timeout or retry budget across the whole
// call.
func (g *Generator) GetScheduleNeighbour(s *domain.Schedule, numTriesPerAction int) *domain.Schedule {
	for {
		op := operator(g.rng.Intn(int(numOperators)))
		for try := 0; try < numTriesPerAction; try++ {
			if result, ok := g.apply(op, s); ok {
				return result
			}
		}
	}
}
