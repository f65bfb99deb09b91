package domain

import "testing"

func buildTestSchedule() *Schedule {
	return &Schedule{
		TruckCheckpoints: map[TruckID][]Checkpoint{
			0: {
				{Time: 100, Terminal: 1, PickupCargo: NewCargoSet(5), DropoffCargo: NewCargoSet(), AvailableTEU: 9, AvailableWeightKg: 90},
				{Time: 500, Terminal: 2, PickupCargo: NewCargoSet(), DropoffCargo: NewCargoSet(5), AvailableTEU: 10, AvailableWeightKg: 100},
			},
		},
		ScheduledCargoTruck: map[CargoID]TruckID{5: 0},
		TruckDrivingTimes:   map[TruckID]NonNegativeTimeDelta{0: 400},
	}
}

func TestScheduleCloneIsIndependent(t *testing.T) {
	s := buildTestSchedule()
	clone := s.Clone()

	clone.TruckCheckpoints[0][0].PickupCargo = clone.TruckCheckpoints[0][0].PickupCargo.Without(5)
	clone.TruckDrivingTimes[0] = 999
	delete(clone.ScheduledCargoTruck, 5)

	if !s.TruckCheckpoints[0][0].PickupCargo.Contains(5) {
		t.Errorf("mutating clone's pickup set affected the original")
	}
	if s.TruckDrivingTimes[0] != 400 {
		t.Errorf("mutating clone's driving time affected the original: got %d", s.TruckDrivingTimes[0])
	}
	if _, ok := s.ScheduledCargoTruck[5]; !ok {
		t.Errorf("deleting from clone's assignment map affected the original")
	}
}

func TestPrevAndNextStrict(t *testing.T) {
	s := buildTestSchedule()

	prev, next := s.PrevAndNext(0, 100)
	if prev != -1 {
		t.Errorf("prev at exact checkpoint time = %d, want -1 (strict <)", prev)
	}
	if next != 1 {
		t.Errorf("next at exact checkpoint time = %d, want 1", next)
	}

	prev, next = s.PrevAndNext(0, 300)
	if prev != 0 {
		t.Errorf("prev at 300 = %d, want 0", prev)
	}
	if next != 1 {
		t.Errorf("next at 300 = %d, want 1", next)
	}

	prev, next = s.PrevAndNext(0, 600)
	if prev != 1 {
		t.Errorf("prev at 600 = %d, want 1", prev)
	}
	if next != -1 {
		t.Errorf("next at 600 = %d, want -1", next)
	}
}

func TestAroundGapAtExactCheckpointTime(t *testing.T) {
	s := buildTestSchedule()

	prev, next := s.AroundGap(0, 100)
	if prev != 0 {
		t.Errorf("prev at exact checkpoint time (weak) = %d, want 0", prev)
	}
	if next != 1 {
		t.Errorf("next at exact checkpoint time = %d, want 1", next)
	}
}

func TestTotalCheckpoints(t *testing.T) {
	s := buildTestSchedule()
	if got := s.TotalCheckpoints(); got != 2 {
		t.Errorf("TotalCheckpoints() = %d, want 2", got)
	}
}
