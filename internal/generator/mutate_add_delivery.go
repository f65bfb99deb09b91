package generator

import "chameleon-scheduler/internal/domain"

// AddDelivery attempts to assign one unscheduled booking to a truck by
// picking an existing (pickup-checkpoint, dropoff-checkpoint) pair already
// on that truck's route whose terminals match the booking's origin and
// destination. It fails when no truck/cargo/pair combination is
// compatible, when either endpoint cannot be rescheduled to accommodate
// the cargo's pickup/dropoff windows, or when the cargo would overload
// truck capacity anywhere between the two checkpoints.
func (g *Generator) AddDelivery(s *domain.Schedule) (*domain.Schedule, bool) {
	truck := g.randomTruck()
	checkpoints := s.TruckCheckpoints[truck]

	cargoPairs := make(map[domain.CargoID][][2]int)
	for i := 0; i < len(checkpoints); i++ {
		for j := i + 1; j < len(checkpoints); j++ {
			key := [2]domain.TerminalID{checkpoints[i].Terminal, checkpoints[j].Terminal}
			set, ok := g.fromTo[key]
			if !ok {
				continue
			}
			for _, cargo := range set.Sorted() {
				if _, scheduled := s.ScheduledCargoTruck[cargo]; scheduled {
					continue
				}
				cargoPairs[cargo] = append(cargoPairs[cargo], [2]int{i, j})
			}
		}
	}
	if len(cargoPairs) == 0 {
		return nil, false
	}

	cargoOptions := make([]domain.CargoID, 0, len(cargoPairs))
	for c := range cargoPairs {
		cargoOptions = append(cargoOptions, c)
	}
	sortCargo(cargoOptions)
	cargo := cargoOptions[g.rng.Intn(len(cargoOptions))]

	pairs := cargoPairs[cargo]
	pair := pairs[g.rng.Intn(len(pairs))]
	i, j := pair[0], pair[1]

	booking := g.bookings[cargo]

	out := s.Clone()
	outCheckpoints := out.TruckCheckpoints[truck]

	pickupI := outCheckpoints[i].PickupCargo.With(cargo)
	chainI := g.rescheduleWindow(out, truck, i, pickupI, outCheckpoints[i].DropoffCargo)
	timeI, ok := g.sampleFromChain(chainI)
	if !ok {
		return nil, false
	}
	outCheckpoints[i].Time = timeI
	outCheckpoints[i].PickupCargo = pickupI

	dropoffJ := outCheckpoints[j].DropoffCargo.With(cargo)
	chainJ := g.rescheduleWindow(out, truck, j, outCheckpoints[j].PickupCargo, dropoffJ)
	timeJ, ok := g.sampleFromChain(chainJ)
	if !ok {
		return nil, false
	}
	outCheckpoints[j].Time = timeJ
	outCheckpoints[j].DropoffCargo = dropoffJ

	for idx := i; idx < j; idx++ {
		outCheckpoints[idx].AvailableWeightKg -= booking.WeightKg
		outCheckpoints[idx].AvailableTEU -= booking.TEU
		if outCheckpoints[idx].AvailableWeightKg < 0 || outCheckpoints[idx].AvailableTEU < 0 {
			return nil, false
		}
	}

	out.TruckCheckpoints[truck] = outCheckpoints
	out.ScheduledCargoTruck[cargo] = truck

	return out, true
}
