package domain

// BookingInfo is the immutable delivery request backing a single piece of
// cargo: where it needs picking up, where it needs dropping off, and how
// much of the truck's capacity it consumes while in flight.
type BookingInfo struct {
	From     TerminalID
	To       TerminalID
	WeightKg int
	TEU      int
}

// TruckData is a truck's immutable identity: where and when it starts, and
// the capacity it must never exceed.
type TruckData struct {
	StartingTerminal TerminalID
	StartTime        Time
	MaxWeightKg      int
	MaxTEU           int
}
