package generator

import "chameleon-scheduler/internal/domain"

// RemoveDelivery undoes a single scheduled booking: it unassigns the
// cargo and restores the capacity it was consuming between its pickup and
// dropoff checkpoints. It never removes the checkpoints themselves, even
// if that leaves them carrying no pickups or dropoffs at all;
// RemoveCheckpoint is the separate operator for that. It fails only when
// no cargo is currently scheduled.
func (g *Generator) RemoveDelivery(s *domain.Schedule) (*domain.Schedule, bool) {
	if len(s.ScheduledCargoTruck) == 0 {
		return nil, false
	}

	scheduled := make([]domain.CargoID, 0, len(s.ScheduledCargoTruck))
	for cargo := range s.ScheduledCargoTruck {
		scheduled = append(scheduled, cargo)
	}
	sortCargo(scheduled)
	cargo := scheduled[g.rng.Intn(len(scheduled))]
	truck := s.ScheduledCargoTruck[cargo]

	out := s.Clone()
	checkpoints := out.TruckCheckpoints[truck]

	pickupIdx, dropoffIdx := -1, -1
	for idx, cp := range checkpoints {
		if cp.PickupCargo.Contains(cargo) {
			pickupIdx = idx
		}
		if cp.DropoffCargo.Contains(cargo) {
			dropoffIdx = idx
		}
	}
	if pickupIdx == -1 || dropoffIdx == -1 {
		domain.InvariantViolation("remove delivery: cargo %d scheduled on truck %d has no matching pickup/dropoff checkpoint", cargo, truck)
	}

	checkpoints[pickupIdx].PickupCargo = checkpoints[pickupIdx].PickupCargo.Without(cargo)
	checkpoints[dropoffIdx].DropoffCargo = checkpoints[dropoffIdx].DropoffCargo.Without(cargo)

	booking := g.bookings[cargo]
	for idx := pickupIdx; idx < dropoffIdx; idx++ {
		checkpoints[idx].AvailableWeightKg += booking.WeightKg
		checkpoints[idx].AvailableTEU += booking.TEU
	}

	out.TruckCheckpoints[truck] = checkpoints
	delete(out.ScheduledCargoTruck, cargo)

	return out, true
}
