package generator

import "chameleon-scheduler/internal/domain"

// RemoveCheckpoint attempts to delete a single waypoint that carries no
// pickup or dropoff, undoing what AddCheckpoint does. It fails when the
// schedule has no checkpoint to remove, the chosen checkpoint has a
// pickup or dropoff (removing it would lose progress), or removing it
// would leave two consecutive stops at the same terminal.
func (g *Generator) RemoveCheckpoint(s *domain.Schedule) (*domain.Schedule, bool) {
	truck, idx, ok := g.randomCheckpoint(s)
	if !ok {
		return nil, false
	}

	checkpoints := s.TruckCheckpoints[truck]
	cp := checkpoints[idx]
	if len(cp.PickupCargo) > 0 || len(cp.DropoffCargo) > 0 {
		return nil, false
	}

	var prevTerminal domain.TerminalID
	if idx == 0 {
		prevTerminal = g.truckData[truck].StartingTerminal
	} else {
		prevTerminal = checkpoints[idx-1].Terminal
	}

	hasNext := idx+1 < len(checkpoints)
	var nextTerminal domain.TerminalID
	if hasNext {
		nextTerminal = checkpoints[idx+1].Terminal
		if prevTerminal == nextTerminal {
			return nil, false
		}
	}

	out := s.Clone()
	outCheckpoints := out.TruckCheckpoints[truck]
	outCheckpoints = append(outCheckpoints[:idx], outCheckpoints[idx+1:]...)
	out.TruckCheckpoints[truck] = outCheckpoints

	removed := g.drive(prevTerminal, cp.Terminal)
	if hasNext {
		removed += g.drive(cp.Terminal, nextTerminal)
	}
	var restored domain.NonNegativeTimeDelta
	if hasNext {
		restored = g.drive(prevTerminal, nextTerminal)
	}
	out.TruckDrivingTimes[truck] = out.TruckDrivingTimes[truck] - removed + restored

	return out, true
}
