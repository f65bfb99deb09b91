package distance

import (
	"context"
	"fmt"
	"testing"

	"chameleon-scheduler/internal/ports"
)

// fakeMatrixProvider answers GetDistances from a fixed origin/destination
// table, the way a recorded ORS response would, without touching the
// network.
type fakeMatrixProvider struct {
	// durations[origin][destination] in seconds.
	durations map[string]map[string]int
}

func (p *fakeMatrixProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	res, err := p.getOne(origin, destination)
	return res, err
}

func (p *fakeMatrixProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		res, err := p.getOne(origin, d)
		if err != nil {
			return nil, err
		}
		out[d] = res
	}
	return out, nil
}

func (p *fakeMatrixProvider) getOne(origin, destination string) (ports.DistanceResult, error) {
	row, ok := p.durations[origin]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no row for origin %q", origin)
	}
	seconds, ok := row[destination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no duration %q -> %q", origin, destination)
	}
	return ports.DistanceResult{DistanceMeters: seconds * 20, DurationSeconds: seconds}, nil
}

func TestBuildDrivingTimeMatrixFillsEveryOffDiagonalCell(t *testing.T) {
	provider := &fakeMatrixProvider{
		durations: map[string]map[string]int{
			"1 Main St":   {"2 Main St": 300, "3 Main St": 600},
			"2 Main St":   {"1 Main St": 300, "3 Main St": 450},
			"3 Main St":   {"1 Main St": 600, "2 Main St": 450},
		},
	}
	terminalAddresses := map[string]string{
		"phoenix-hub":  "1 Main St",
		"tempe-depot":  "2 Main St",
		"mesa-landing": "3 Main St",
	}

	order, matrix, err := BuildDrivingTimeMatrix(context.Background(), provider, terminalAddresses)
	if err != nil {
		t.Fatalf("BuildDrivingTimeMatrix: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("got %d terminals in order, want 3", len(order))
	}

	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	for i, from := range order {
		for j, to := range order {
			if i == j {
				if matrix[i][j] != 0 {
					t.Errorf("diagonal (%s,%s) = %d, want 0", from, to, matrix[i][j])
				}
				continue
			}
			want := provider.durations[terminalAddresses[from]][terminalAddresses[to]]
			if int(matrix[i][j]) != want {
				t.Errorf("matrix[%s][%s] = %d, want %d", from, to, matrix[i][j], want)
			}
		}
	}
}

func TestBuildDrivingTimeMatrixPropagatesProviderError(t *testing.T) {
	provider := &fakeMatrixProvider{durations: map[string]map[string]int{}}
	terminalAddresses := map[string]string{
		"a": "addr-a",
		"b": "addr-b",
	}

	_, _, err := BuildDrivingTimeMatrix(context.Background(), provider, terminalAddresses)
	if err == nil {
		t.Fatalf("BuildDrivingTimeMatrix succeeded, want an error from the provider")
	}
}
