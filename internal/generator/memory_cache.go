package generator

import (
	"context"

	"chameleon-scheduler/internal/domain"
)

// memoryDrivingTimeCache is the ports.DrivingTimeCache a Generator installs
// by default. It is a plain unsynchronized map: the generator itself is
// documented as not safe for concurrent use, so no locking is needed here.
// Callers wanting a shared or durable matrix install one of the adapters
// under internal/adapters/drivingtimecache via UseDrivingTimeCache.
type memoryDrivingTimeCache struct {
	pairs map[[2]domain.TerminalID]domain.NonNegativeTimeDelta
}

func newMemoryDrivingTimeCache() *memoryDrivingTimeCache {
	return &memoryDrivingTimeCache{pairs: make(map[[2]domain.TerminalID]domain.NonNegativeTimeDelta)}
}

func (c *memoryDrivingTimeCache) Get(from, to domain.TerminalID) (domain.NonNegativeTimeDelta, bool) {
	dt, ok := c.pairs[[2]domain.TerminalID{from, to}]
	return dt, ok
}

func (c *memoryDrivingTimeCache) Set(_ context.Context, from, to domain.TerminalID, dt domain.NonNegativeTimeDelta) error {
	c.pairs[[2]domain.TerminalID{from, to}] = dt
	return nil
}

func (c *memoryDrivingTimeCache) Pairs(context.Context) ([][2]domain.TerminalID, error) {
	out := make([][2]domain.TerminalID, 0, len(c.pairs))
	for pair := range c.pairs {
		out = append(out, pair)
	}
	return out, nil
}

func (c *memoryDrivingTimeCache) clear() {
	c.pairs = make(map[[2]domain.TerminalID]domain.NonNegativeTimeDelta)
}
