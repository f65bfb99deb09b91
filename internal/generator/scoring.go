package generator

import "chameleon-scheduler/internal/domain"

// Scores returns the 3-element scoring vector for s: the proportion of
// bookings delivered, the proportion of trucks with no checkpoints at
// all, and a driving-time efficiency ratio. Higher is better on all
// three. Callers comparing two schedules combine these however their
// outer optimizer likes; the engine itself has no opinion on their
// relative weight.
func (g *Generator) Scores(s *domain.Schedule) [3]float64 {
	deliveriesProportion := 0.0
	if n := g.numCargo(); n > 0 {
		deliveriesProportion = float64(len(s.ScheduledCargoTruck)) / float64(n)
	}

	freeTrucks := 0
	for t := 0; t < g.numTrucks(); t++ {
		if len(s.TruckCheckpoints[domain.TruckID(t)]) == 0 {
			freeTrucks++
		}
	}
	freeTrucksProportion := 0.0
	if n := g.numTrucks(); n > 0 {
		freeTrucksProportion = float64(freeTrucks) / float64(n)
	}

	var minDrivingTime domain.NonNegativeTimeDelta
	for cargo := range s.ScheduledCargoTruck {
		booking := g.bookings[cargo]
		minDrivingTime += g.drive(booking.From, booking.To)
	}

	var totalDrivingTime domain.NonNegativeTimeDelta
	for _, dt := range s.TruckDrivingTimes {
		totalDrivingTime += dt
	}
	denominator := totalDrivingTime
	if denominator < 1 {
		denominator = 1
	}
	drivingTimeScore := float64(minDrivingTime) / float64(denominator)

	return [3]float64{deliveriesProportion, freeTrucksProportion, drivingTimeScore}
}
