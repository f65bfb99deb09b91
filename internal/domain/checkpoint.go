package domain

// Checkpoint is a planned stop of a truck at a terminal at a specific time,
// together with the cargo picked up and dropped off there. AvailableTEU and
// AvailableWeightKg reflect remaining truck capacity immediately after this
// checkpoint's pickups and dropoffs are applied: truck.Max minus whatever
// cargo is in flight right after this stop.
type Checkpoint struct {
	Time              Time
	Terminal          TerminalID
	PickupCargo       CargoSet
	DropoffCargo      CargoSet
	AvailableTEU      int
	AvailableWeightKg int
}

// Clone returns an independent copy of the checkpoint (a shallow copy would
// share the pickup/dropoff sets with the original, defeating copy-on-write).
func (c Checkpoint) Clone() Checkpoint {
	return Checkpoint{
		Time:              c.Time,
		Terminal:          c.Terminal,
		PickupCargo:       c.PickupCargo.Clone(),
		DropoffCargo:      c.DropoffCargo.Clone(),
		AvailableTEU:      c.AvailableTEU,
		AvailableWeightKg: c.AvailableWeightKg,
	}
}
