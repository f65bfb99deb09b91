package distance

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/ports"
)

// matrixConcurrency bounds how many origins are resolved against the
// distance provider at once. The teacher's route planner ran its
// pairwise distance calls behind a five-slot channel semaphore; an
// errgroup with SetLimit expresses the same bound without the manual
// WaitGroup/channel bookkeeping.
const matrixConcurrency = 5

// BuildDrivingTimeMatrix resolves a dense terminal-to-terminal driving-time
// matrix from terminalAddresses (external terminal id -> a geocodable
// address or place name) using provider, and returns it in the
// (terminalOrder, matrix) shape SetDrivingTimes expects.
//
// One GetDistances call is issued per origin, each returning every other
// terminal's distance in a single batched request; matrixConcurrency of
// those origin calls run at a time. The diagonal is always zero and is
// never sent to the provider.
func BuildDrivingTimeMatrix(
	ctx context.Context,
	provider ports.DistanceMatrixProvider,
	terminalAddresses map[string]string,
) ([]string, [][]domain.NonNegativeTimeDelta, error) {
	terminalOrder := make([]string, 0, len(terminalAddresses))
	for id := range terminalAddresses {
		terminalOrder = append(terminalOrder, id)
	}

	n := len(terminalOrder)
	matrix := make([][]domain.NonNegativeTimeDelta, n)
	for i := range matrix {
		matrix[i] = make([]domain.NonNegativeTimeDelta, n)
	}

	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(matrixConcurrency)

	for i, originID := range terminalOrder {
		i, originID := i, originID
		group.Go(func() error {
			destAddrs := make([]string, 0, n-1)
			destIdx := make(map[string]int, n-1)
			for j, destID := range terminalOrder {
				if j == i {
					continue
				}
				destAddrs = append(destAddrs, terminalAddresses[destID])
				destIdx[terminalAddresses[destID]] = j
			}

			results, err := provider.GetDistances(gctx, terminalAddresses[originID], destAddrs)
			if err != nil {
				return fmt.Errorf("build driving time matrix: origin %q: %w", originID, err)
			}

			mu.Lock()
			defer mu.Unlock()
			for addr, j := range destIdx {
				res, ok := results[addr]
				if !ok {
					return fmt.Errorf("build driving time matrix: origin %q: no result for destination %q", originID, addr)
				}
				if res.DurationSeconds < 0 {
					return fmt.Errorf("build driving time matrix: origin %q destination %q: negative duration %d", originID, addr, res.DurationSeconds)
				}
				matrix[i][j] = domain.NonNegativeTimeDelta(res.DurationSeconds)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return terminalOrder, matrix, nil
}
