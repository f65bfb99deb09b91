package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// InitSchema creates the tables a fresh database needs: one run's worth of
// terminals, trucks, bookings, and driving times (keyed by the run id a
// ProblemRepository caller assigns), the dense-handle driving_times table
// the drivingtimecache SQL adapters read and write, plus the ORS
// geocode/distance caches the address-to-matrix pipeline shares across runs.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS terminals (
			run_id TEXT NOT NULL,
			terminal_id TEXT NOT NULL,
			open_time INTEGER NOT NULL,
			close_time INTEGER NOT NULL,
			PRIMARY KEY (run_id, terminal_id)
		);`,
		`CREATE TABLE IF NOT EXISTS trucks (
			run_id TEXT NOT NULL,
			truck_id TEXT NOT NULL,
			starting_terminal TEXT NOT NULL,
			max_weight_kg INTEGER NOT NULL,
			max_teu INTEGER NOT NULL,
			PRIMARY KEY (run_id, truck_id)
		);`,
		`CREATE TABLE IF NOT EXISTS bookings (
			run_id TEXT NOT NULL,
			cargo_id TEXT NOT NULL,
			from_terminal TEXT NOT NULL,
			to_terminal TEXT NOT NULL,
			weight_kg INTEGER NOT NULL,
			teu INTEGER NOT NULL,
			pickup_open_time INTEGER NOT NULL,
			pickup_close_time INTEGER NOT NULL,
			dropoff_open_time INTEGER NOT NULL,
			dropoff_close_time INTEGER NOT NULL,
			PRIMARY KEY (run_id, cargo_id)
		);`,
		`CREATE TABLE IF NOT EXISTS problem_driving_times (
			run_id TEXT NOT NULL,
			from_terminal TEXT NOT NULL,
			to_terminal TEXT NOT NULL,
			driving_time INTEGER NOT NULL,
			PRIMARY KEY (run_id, from_terminal, to_terminal)
		);`,
		`CREATE TABLE IF NOT EXISTS driving_times (
			from_terminal INTEGER NOT NULL,
			to_terminal INTEGER NOT NULL,
			driving_time INTEGER NOT NULL,
			PRIMARY KEY (from_terminal, to_terminal)
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lon REAL NOT NULL,
			lat REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
		ON distance_cache(destination, origin);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// JSONBookingSeed is one synthetic booking read from a seed file, before it
// is minted a uuid cargo id.
type JSONBookingSeed struct {
	WeightKg         int    `json:"weight_kg"`
	TEU              int    `json:"teu"`
	From             string `json:"from"`
	To               string `json:"to"`
	PickupOpenTime   int    `json:"pickup_open_time"`
	PickupCloseTime  int    `json:"pickup_close_time"`
	DropoffOpenTime  int    `json:"dropoff_open_time"`
	DropoffCloseTime int    `json:"dropoff_close_time"`
}

// SeedBookingsFromJSON reads a JSON array of JSONBookingSeed entries from
// jsonPath and mints a uuid-based cargo id for each, returning the seeded
// entries keyed by their freshly minted id. It does not itself write to the
// database: the caller threads the result into a ports.ProblemInstance the
// same way a live booking intake would.
func SeedBookingsFromJSON(jsonPath string) (map[string]JSONBookingSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed bookings: read %q: %w", jsonPath, err)
	}

	var entries []JSONBookingSeed
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("seed bookings: parse json: %w", err)
	}

	out := make(map[string]JSONBookingSeed, len(entries))
	for i, entry := range entries {
		if entry.From == "" || entry.To == "" {
			return nil, fmt.Errorf("seed bookings: entry %d: from/to must be non-empty", i)
		}
		out[uuid.NewString()] = entry
	}

	return out, nil
}
