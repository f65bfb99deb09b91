package domain

import "sort"

// Schedule is the mutable candidate solution for every truck in the
// planning period. It is copy-on-write: every mutation in the generator
// package clones a Schedule before touching it, so a caller holding an
// older Schedule keeps seeing the state it started with.
type Schedule struct {
	TruckCheckpoints    map[TruckID][]Checkpoint
	ScheduledCargoTruck map[CargoID]TruckID
	TruckDrivingTimes   map[TruckID]NonNegativeTimeDelta
}

// Clone performs a deep copy: a new Schedule value that shares no mutable
// state (slices, maps, or the cargo sets inside checkpoints) with the
// receiver.
func (s *Schedule) Clone() *Schedule {
	out := &Schedule{
		TruckCheckpoints:    make(map[TruckID][]Checkpoint, len(s.TruckCheckpoints)),
		ScheduledCargoTruck: make(map[CargoID]TruckID, len(s.ScheduledCargoTruck)),
		TruckDrivingTimes:   make(map[TruckID]NonNegativeTimeDelta, len(s.TruckDrivingTimes)),
	}

	for truck, checkpoints := range s.TruckCheckpoints {
		cloned := make([]Checkpoint, len(checkpoints))
		for i, cp := range checkpoints {
			cloned[i] = cp.Clone()
		}
		out.TruckCheckpoints[truck] = cloned
	}
	for cargo, truck := range s.ScheduledCargoTruck {
		out.ScheduledCargoTruck[cargo] = truck
	}
	for truck, dt := range s.TruckDrivingTimes {
		out.TruckDrivingTimes[truck] = dt
	}

	return out
}

// SortedTrucks returns the schedule's truck ids in ascending order, giving a
// deterministic iteration order for operations (such as picking a uniformly
// random checkpoint across all trucks) that need one.
func (s *Schedule) SortedTrucks() []TruckID {
	out := make([]TruckID, 0, len(s.TruckCheckpoints))
	for truck := range s.TruckCheckpoints {
		out = append(out, truck)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalCheckpoints counts checkpoints across every truck.
func (s *Schedule) TotalCheckpoints() int {
	total := 0
	for _, checkpoints := range s.TruckCheckpoints {
		total += len(checkpoints)
	}
	return total
}

// PrevAndNext returns the index of the last checkpoint of truck with
// time < t (strict) and the index of the first checkpoint with time > t
// (strict). -1 signals absence (no such checkpoint).
func (s *Schedule) PrevAndNext(truck TruckID, t Time) (prevIdx, nextIdx int) {
	checkpoints := s.TruckCheckpoints[truck]

	prevIdx = -1
	for i, cp := range checkpoints {
		if cp.Time < t {
			prevIdx = i
		} else {
			break
		}
	}

	nextIdx = -1
	for i, cp := range checkpoints {
		if cp.Time > t {
			nextIdx = i
			break
		}
	}

	return prevIdx, nextIdx
}

// AroundGap returns the index of the last checkpoint of truck with
// time <= t (weak) and the index of the first checkpoint with time > t
// (strict): the half-open gap [prev.Time, next.Time) containing t,
// including the implicit gaps before the first and after the last
// checkpoint. -1 signals absence.
func (s *Schedule) AroundGap(truck TruckID, t Time) (prevIdx, nextIdx int) {
	checkpoints := s.TruckCheckpoints[truck]

	prevIdx = -1
	for i, cp := range checkpoints {
		if cp.Time <= t {
			prevIdx = i
		} else {
			break
		}
	}

	nextIdx = -1
	for i, cp := range checkpoints {
		if cp.Time > t {
			nextIdx = i
			break
		}
	}

	return prevIdx, nextIdx
}
