package generator

import (
	"context"
	"testing"

	"chameleon-scheduler/internal/domain"
)

func scenarioATerminals() map[string]TerminalWindow {
	return map[string]TerminalWindow{
		"A": {Open: 0, Close: 1000},
		"B": {Open: 0, Close: 1000},
	}
}

func scenarioATrucks() map[string]TruckInput {
	return map[string]TruckInput{
		"T": {StartingTerminal: "A", MaxWeightKg: 100, MaxTEU: 10},
	}
}

func scenarioABookings(weightKg int) []BookingInput {
	return []BookingInput{
		{
			CargoID: "c1", WeightKg: weightKg, TEU: 1,
			From: "A", To: "B",
			PickupOpenTime: 100, PickupCloseTime: 300,
			DropoffOpenTime: 500, DropoffCloseTime: 900,
		},
	}
}

func mustSetSymmetricDriveTime(t *testing.T, g *Generator, drive domain.NonNegativeTimeDelta) {
	t.Helper()
	err := g.SetDrivingTimes(context.Background(),
		[]string{"A", "B"},
		[][]domain.NonNegativeTimeDelta{
			{0, drive},
			{drive, 0},
		},
	)
	if err != nil {
		t.Fatalf("SetDrivingTimes: %v", err)
	}
}

func newScenarioGenerator(t *testing.T, weightKg int) *Generator {
	t.Helper()
	g, err := New(scenarioATerminals(), scenarioATrucks(), scenarioABookings(weightKg), 0, 1000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mustSetSymmetricDriveTime(t, g, 100)
	g.Seed(0)
	return g
}

// driveUntilDelivered runs the neighbor strategy until c1 is scheduled or
// the iteration budget is exhausted, whichever comes first.
func driveUntilDelivered(g *Generator, s *domain.Schedule, maxIterations int) *domain.Schedule {
	for i := 0; i < maxIterations; i++ {
		s = g.GetScheduleNeighbour(s, 200)
		if len(s.ScheduledCargoTruck) > 0 {
			return s
		}
	}
	return s
}

func TestScenarioATrivialFeasibility(t *testing.T) {
	g := newScenarioGenerator(t, 10)
	s := g.EmptySchedule()

	s = driveUntilDelivered(g, s, 5000)

	if len(s.ScheduledCargoTruck) != 1 {
		t.Fatalf("cargo never got scheduled within the iteration budget")
	}

	scores := g.Scores(s)
	if scores[0] != 1.0 {
		t.Errorf("deliveries_proportion = %v, want 1.0", scores[0])
	}

	var total domain.NonNegativeTimeDelta
	for _, dt := range s.TruckDrivingTimes {
		total += dt
	}
	if total < 100 {
		t.Errorf("total driving time = %d, want >= 100", total)
	}
}

func TestScenarioBCapacityDenial(t *testing.T) {
	g := newScenarioGenerator(t, 200) // exceeds max_weight_kg = 100
	s := g.EmptySchedule()

	for i := 0; i < 2000; i++ {
		s = g.GetScheduleNeighbour(s, 200)
		if len(s.ScheduledCargoTruck) != 0 {
			t.Fatalf("iteration %d: cargo exceeding capacity was scheduled", i)
		}
	}

	scores := g.Scores(s)
	if scores[0] != 0.0 {
		t.Errorf("deliveries_proportion = %v, want 0.0", scores[0])
	}
}

func TestScenarioCWindowMismatchPrunedAtConstruction(t *testing.T) {
	terminals := map[string]TerminalWindow{
		"A": {Open: 0, Close: 500},
		"B": {Open: 0, Close: 1000},
	}
	trucks := map[string]TruckInput{
		"T": {StartingTerminal: "A", MaxWeightKg: 100, MaxTEU: 10},
	}
	bookings := []BookingInput{
		{
			CargoID: "c1", WeightKg: 10, TEU: 1,
			From: "A", To: "B",
			PickupOpenTime: 800, PickupCloseTime: 900, // entirely after A closes at 500
			DropoffOpenTime: 500, DropoffCloseTime: 900,
		},
	}

	g, err := New(terminals, trucks, bookings, 0, 1000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if g.numCargo() != 0 {
		t.Errorf("numCargo() = %d, want 0 (booking should be dropped)", g.numCargo())
	}
	if _, ok := g.cargo.Find("c1"); ok {
		t.Errorf("dropped cargo c1 was still interned")
	}

	ids := g.GetTerminalIDs()
	if len(ids) != 0 {
		t.Errorf("GetTerminalIDs() = %v, want empty (both terminals only referenced by the dropped booking)", ids)
	}
}

func TestScenarioDRemoveDeliveryRestoresCapacity(t *testing.T) {
	g := newScenarioGenerator(t, 10)

	cargo, ok := g.cargo.Find("c1")
	if !ok {
		t.Fatalf("cargo c1 was not interned")
	}
	truck, ok := g.trucks.Find("T")
	if !ok {
		t.Fatalf("truck T was not interned")
	}

	s := &domain.Schedule{
		TruckCheckpoints: map[domain.TruckID][]domain.Checkpoint{
			truck: {
				{Time: 200, Terminal: g.bookings[cargo].From, PickupCargo: domain.NewCargoSet(cargo), DropoffCargo: domain.NewCargoSet(), AvailableTEU: 9, AvailableWeightKg: 90},
				{Time: 600, Terminal: g.bookings[cargo].To, PickupCargo: domain.NewCargoSet(), DropoffCargo: domain.NewCargoSet(cargo), AvailableTEU: 9, AvailableWeightKg: 90},
			},
		},
		ScheduledCargoTruck: map[domain.CargoID]domain.TruckID{cargo: truck},
		TruckDrivingTimes:   map[domain.TruckID]domain.NonNegativeTimeDelta{truck: 200},
	}

	g.rng.Seed(0) // RemoveDelivery must pick the only scheduled cargo regardless of draw

	out, ok := g.RemoveDelivery(s)
	if !ok {
		t.Fatalf("RemoveDelivery failed, want success")
	}

	checkpoints := out.TruckCheckpoints[truck]
	if checkpoints[0].AvailableTEU != 10 || checkpoints[0].AvailableWeightKg != 100 {
		t.Errorf("pickup checkpoint capacity not restored: teu=%d weight=%d", checkpoints[0].AvailableTEU, checkpoints[0].AvailableWeightKg)
	}
	if checkpoints[0].PickupCargo.Contains(cargo) {
		t.Errorf("pickup checkpoint still lists removed cargo")
	}
	if checkpoints[1].DropoffCargo.Contains(cargo) {
		t.Errorf("dropoff checkpoint still lists removed cargo")
	}
	if _, stillScheduled := out.ScheduledCargoTruck[cargo]; stillScheduled {
		t.Errorf("cargo still present in ScheduledCargoTruck after RemoveDelivery")
	}
}

func recomputeDrivingTime(g *Generator, s *domain.Schedule, truck domain.TruckID) domain.NonNegativeTimeDelta {
	checkpoints := s.TruckCheckpoints[truck]
	prev := g.truckData[truck].StartingTerminal
	var total domain.NonNegativeTimeDelta
	for _, cp := range checkpoints {
		total += g.drive(prev, cp.Terminal)
		prev = cp.Terminal
	}
	return total
}

func TestScenarioEDrivingTimeCacheBookkeeping(t *testing.T) {
	g := newScenarioGenerator(t, 10)
	s := g.EmptySchedule()

	for i := 0; i < 500; i++ {
		s = g.GetScheduleNeighbour(s, 200)
		for truck := range s.TruckCheckpoints {
			want := recomputeDrivingTime(g, s, truck)
			if got := s.TruckDrivingTimes[truck]; got != want {
				t.Fatalf("iteration %d: truck %d driving time = %d, want %d (recomputed)", i, truck, got, want)
			}
		}
	}
}

func TestScenarioFDeterministicSeed(t *testing.T) {
	g1 := newScenarioGenerator(t, 10)
	g2 := newScenarioGenerator(t, 10)

	s1 := g1.EmptySchedule()
	s2 := g2.EmptySchedule()

	for i := 0; i < 200; i++ {
		s1 = g1.GetScheduleNeighbour(s1, 200)
		s2 = g2.GetScheduleNeighbour(s2, 200)

		if g1.Repr(s1) != g2.Repr(s2) {
			t.Fatalf("iteration %d: schedules diverged under identical seed:\n%s\nvs\n%s", i, g1.Repr(s1), g2.Repr(s2))
		}
	}
}
