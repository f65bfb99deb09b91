package generator

import "chameleon-scheduler/internal/domain"

// drivingGapInterval computes the interval of times at which a checkpoint
// at terminal x could be placed on truck between the checkpoints at
// prevIdx and nextIdx (either may be -1, meaning "use the truck's start" or
// "use the end of the planning period" respectively). It fails when the
// resulting window is empty or inverted: the truck cannot make it from its
// predecessor to x and on to its successor in the time available.
func (g *Generator) drivingGapInterval(s *domain.Schedule, truck domain.TruckID, prevIdx, nextIdx int, x domain.TerminalID) (domain.Interval, bool) {
	checkpoints := s.TruckCheckpoints[truck]
	truckData := g.truckData[truck]

	var prevTerminal domain.TerminalID
	var prevTime domain.Time
	if prevIdx == -1 {
		prevTerminal = truckData.StartingTerminal
		prevTime = truckData.StartTime
	} else {
		prevTerminal = checkpoints[prevIdx].Terminal
		prevTime = checkpoints[prevIdx].Time
	}

	var nextTime domain.Time
	var d2 domain.NonNegativeTimeDelta
	if nextIdx == -1 {
		nextTime = g.planningPeriod.End()
		d2 = 0
	} else {
		nextTime = checkpoints[nextIdx].Time
		d2 = g.drive(x, checkpoints[nextIdx].Terminal)
	}

	d1 := g.drive(prevTerminal, x)

	return domain.NewPlainInterval(prevTime+domain.Time(d1), nextTime-domain.Time(d2))
}

// rescheduleWindow computes the set of times at which the checkpoint at
// idx on truck could legally be moved to, given a (possibly updated)
// pickup and dropoff cargo set for it: the intersection of every picked-up
// cargo's effective pickup window, every dropped-off cargo's effective
// dropoff window, the driving gap interval against its current neighbors,
// and the planning period.
func (g *Generator) rescheduleWindow(s *domain.Schedule, truck domain.TruckID, idx int, pickup, dropoff domain.CargoSet) domain.IntervalChain {
	checkpoints := s.TruckCheckpoints[truck]

	prevIdx := idx - 1
	if prevIdx < 0 {
		prevIdx = -1
	}
	nextIdx := idx + 1
	if nextIdx >= len(checkpoints) {
		nextIdx = -1
	}

	gap, ok := g.drivingGapInterval(s, truck, prevIdx, nextIdx, checkpoints[idx].Terminal)
	if !ok {
		return domain.NewChain[domain.Empty]()
	}

	chains := make([]domain.IntervalChain, 0, len(pickup)+len(dropoff)+2)
	for cargo := range pickup {
		chains = append(chains, g.pickupWindows[cargo])
	}
	for cargo := range dropoff {
		chains = append(chains, g.dropoffWindows[cargo])
	}
	chains = append(chains, domain.ChainFromInterval(gap))
	chains = append(chains, domain.ChainFromInterval(g.planningPeriod))

	return domain.IntersectAll(chains)
}

// sampleFromChain draws a chain element uniformly, then a time uniformly
// inside it. ok is false for an empty chain.
func (g *Generator) sampleFromChain(chain domain.IntervalChain) (domain.Time, bool) {
	intervals := chain.Intervals()
	if len(intervals) == 0 {
		return 0, false
	}
	iv := intervals[g.rng.Intn(len(intervals))]
	return domain.RandomTime(iv, g.rng), true
}
