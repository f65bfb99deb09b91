package repositories

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return db
}

func testInstance() ports.ProblemInstance {
	return ports.ProblemInstance{
		Terminals: map[string]ports.TerminalSeed{
			"A": {Open: 0, Close: 1000},
			"B": {Open: 0, Close: 1000},
		},
		Trucks: map[string]ports.TruckSeed{
			"T": {StartingTerminal: "A", MaxWeightKg: 100, MaxTEU: 10},
		},
		Bookings: []ports.BookingSeed{
			{
				CargoID: "c1", WeightKg: 10, TEU: 1,
				From: "A", To: "B",
				PickupOpenTime: 100, PickupCloseTime: 300,
				DropoffOpenTime: 500, DropoffCloseTime: 900,
			},
		},
		DrivingTimes: map[[2]string]domain.NonNegativeTimeDelta{
			{"A", "B"}: 100,
			{"B", "A"}: 100,
		},
	}
}

func TestSQLiteProblemRepositorySaveThenLoadRoundTrips(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProblemRepository(db)
	ctx := context.Background()
	want := testInstance()

	if err := repo.Save(ctx, "demo", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Terminals) != len(want.Terminals) {
		t.Fatalf("got %d terminals, want %d", len(got.Terminals), len(want.Terminals))
	}
	for id, w := range want.Terminals {
		g, ok := got.Terminals[id]
		if !ok || g != w {
			t.Errorf("terminal %q = %+v, want %+v (found=%v)", id, g, w, ok)
		}
	}
	if len(got.Trucks) != len(want.Trucks) {
		t.Fatalf("got %d trucks, want %d", len(got.Trucks), len(want.Trucks))
	}
	if len(got.Bookings) != len(want.Bookings) {
		t.Fatalf("got %d bookings, want %d", len(got.Bookings), len(want.Bookings))
	}
	if got.Bookings[0].CargoID != "c1" || got.Bookings[0].PickupOpenTime != 100 {
		t.Errorf("booking mismatch: %+v", got.Bookings[0])
	}
	if len(got.DrivingTimes) != len(want.DrivingTimes) {
		t.Fatalf("got %d driving times, want %d", len(got.DrivingTimes), len(want.DrivingTimes))
	}
}

func TestSQLiteProblemRepositoryLoadUnknownRunIsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProblemRepository(db)

	got, err := repo.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Terminals) != 0 || len(got.Trucks) != 0 || len(got.Bookings) != 0 {
		t.Fatalf("Load of unknown run returned non-empty instance: %+v", got)
	}
}

func TestSQLiteProblemRepositorySaveOverwritesPriorRun(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProblemRepository(db)
	ctx := context.Background()

	if err := repo.Save(ctx, "demo", testInstance()); err != nil {
		t.Fatalf("Save #1: %v", err)
	}

	second := ports.ProblemInstance{
		Terminals: map[string]ports.TerminalSeed{"C": {Open: 0, Close: 500}},
		Trucks:    map[string]ports.TruckSeed{},
	}
	if err := repo.Save(ctx, "demo", second); err != nil {
		t.Fatalf("Save #2: %v", err)
	}

	got, err := repo.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Terminals) != 1 {
		t.Fatalf("got %d terminals after overwrite, want 1: %+v", len(got.Terminals), got.Terminals)
	}
	if _, ok := got.Terminals["C"]; !ok {
		t.Errorf("expected terminal C after overwrite, got %+v", got.Terminals)
	}
}
