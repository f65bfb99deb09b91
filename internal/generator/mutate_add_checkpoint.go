package generator

import "chameleon-scheduler/internal/domain"

// AddCheckpoint attempts to insert a new, empty waypoint into a randomly
// chosen truck's route, so future mutations have more terminals to work
// with. It fails (returns nil, false) if no unscheduled cargo offers an
// eligible terminal, or if the terminal it samples cannot be fit into the
// gap in time.
func (g *Generator) AddCheckpoint(s *domain.Schedule) (*domain.Schedule, bool) {
	truck := g.randomTruck()

	gapTime := domain.RandomTime(g.planningPeriod, g.rng)
	prevIdx, nextIdx := s.AroundGap(truck, gapTime)

	checkpoints := s.TruckCheckpoints[truck]

	var gapPrevTerminal domain.TerminalID
	if prevIdx == -1 {
		gapPrevTerminal = g.truckData[truck].StartingTerminal
	} else {
		gapPrevTerminal = checkpoints[prevIdx].Terminal
	}
	var gapNextTerminal domain.TerminalID
	hasNext := nextIdx != -1
	if hasNext {
		gapNextTerminal = checkpoints[nextIdx].Terminal
	}

	differsFromEndpoints := func(x domain.TerminalID) bool {
		if x == gapPrevTerminal {
			return false
		}
		if hasNext && x == gapNextTerminal {
			return false
		}
		return true
	}

	// hasEarlierStopAt treats the truck's own starting terminal as an
	// implicit checkpoint before index 0, consistent with how I2/I3 treat
	// the start: a cargo whose pickup terminal is where the truck begins
	// can have its dropoff terminal added as a waypoint candidate even
	// before any real checkpoint exists yet.
	hasEarlierStopAt := func(terminal domain.TerminalID) bool {
		if g.truckData[truck].StartingTerminal == terminal {
			return true
		}
		for i := 0; i <= prevIdx; i++ {
			if checkpoints[i].Terminal == terminal {
				return true
			}
		}
		return false
	}

	candidates := make(map[domain.TerminalID]struct{})
	g.unscheduledCargo(s, func(c domain.CargoID) {
		booking := g.bookings[c]
		if differsFromEndpoints(booking.From) {
			candidates[booking.From] = struct{}{}
		}
		if hasEarlierStopAt(booking.From) && differsFromEndpoints(booking.To) {
			candidates[booking.To] = struct{}{}
		}
	})
	if len(candidates) == 0 {
		return nil, false
	}

	options := make([]domain.TerminalID, 0, len(candidates))
	for t := range candidates {
		options = append(options, t)
	}
	sortTerminals(options)
	chosen := options[g.rng.Intn(len(options))]

	gap, ok := g.drivingGapInterval(s, truck, prevIdx, nextIdx, chosen)
	if !ok {
		return nil, false
	}
	checkpointTime := domain.RandomTime(gap, g.rng)

	var availTEU, availWeight int
	if prevIdx == -1 {
		availTEU = g.truckData[truck].MaxTEU
		availWeight = g.truckData[truck].MaxWeightKg
	} else {
		availTEU = checkpoints[prevIdx].AvailableTEU
		availWeight = checkpoints[prevIdx].AvailableWeightKg
	}

	newCheckpoint := domain.Checkpoint{
		Time:              checkpointTime,
		Terminal:          chosen,
		PickupCargo:       domain.NewCargoSet(),
		DropoffCargo:      domain.NewCargoSet(),
		AvailableTEU:      availTEU,
		AvailableWeightKg: availWeight,
	}

	out := s.Clone()
	outCheckpoints := out.TruckCheckpoints[truck]
	insertAt := prevIdx + 1
	outCheckpoints = append(outCheckpoints, domain.Checkpoint{})
	copy(outCheckpoints[insertAt+1:], outCheckpoints[insertAt:])
	outCheckpoints[insertAt] = newCheckpoint
	out.TruckCheckpoints[truck] = outCheckpoints

	var bypassed domain.NonNegativeTimeDelta
	if hasNext {
		bypassed = g.drive(gapPrevTerminal, gapNextTerminal)
	}
	added := g.drive(gapPrevTerminal, chosen)
	if hasNext {
		added += g.drive(chosen, gapNextTerminal)
	}
	out.TruckDrivingTimes[truck] = out.TruckDrivingTimes[truck] - bypassed + added

	return out, true
}
