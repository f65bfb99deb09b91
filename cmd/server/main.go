package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"chameleon-scheduler/internal/adapters/cache"
	"chameleon-scheduler/internal/adapters/distance"
	"chameleon-scheduler/internal/adapters/repositories"
	"chameleon-scheduler/internal/api"
	"chameleon-scheduler/internal/config"
	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/generator"
	"chameleon-scheduler/internal/ports"
)

// main is the application composition root. It wires the SQLite problem
// repository behind a generator and starts the HTTP demo server exposing
// it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	runID := config.Get("RUN_ID", "demo")
	port := config.Get("PORT", "8080")
	planningEnd := domain.Time(config.GetInt("PLANNING_HORIZON_SECONDS", 24*3600))

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLiteProblemRepository(db)
	gen, err := loadOrSeedGenerator(context.Background(), db, repo, runID, planningEnd)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(gen)

	log.Printf("Server listening addr=:%s run_id=%s", port, runID)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// loadOrSeedGenerator loads runID's problem instance, falling back to a
// small built-in demo instance (and persisting it) the first time the
// server starts against an empty database.
func loadOrSeedGenerator(ctx context.Context, db *sql.DB, repo ports.ProblemRepository, runID string, planningEnd domain.Time) (*generator.Generator, error) {
	instance, err := repo.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load or seed generator: %w", err)
	}

	if len(instance.Terminals) == 0 {
		instance = demoInstance()
		if err := repo.Save(ctx, runID, instance); err != nil {
			return nil, fmt.Errorf("load or seed generator: seed demo instance: %w", err)
		}
	}

	if err := enrichWithORSDrivingTimes(ctx, db, &instance); err != nil {
		return nil, fmt.Errorf("load or seed generator: %w", err)
	}

	gen, err := generator.NewFromProblemInstance(instance, 0, planningEnd)
	if err != nil {
		return nil, fmt.Errorf("load or seed generator: %w", err)
	}
	return gen, nil
}

// demoInstance is a tiny three-terminal, two-truck problem, enough to
// exercise every HTTP endpoint without requiring a seed file or ORS key.
func demoInstance() ports.ProblemInstance {
	return ports.ProblemInstance{
		Terminals: map[string]ports.TerminalSeed{
			"phoenix-hub":  {Open: 0, Close: 24 * 3600},
			"tempe-depot":  {Open: 0, Close: 24 * 3600},
			"mesa-landing": {Open: 0, Close: 24 * 3600},
		},
		Trucks: map[string]ports.TruckSeed{
			"truck-1": {StartingTerminal: "phoenix-hub", MaxWeightKg: 5000, MaxTEU: 4},
			"truck-2": {StartingTerminal: "phoenix-hub", MaxWeightKg: 5000, MaxTEU: 4},
		},
		Bookings: []ports.BookingSeed{
			{
				CargoID: "demo-cargo-1", WeightKg: 800, TEU: 1,
				From: "phoenix-hub", To: "tempe-depot",
				PickupOpenTime: 0, PickupCloseTime: 3600,
				DropoffOpenTime: 1800, DropoffCloseTime: 7200,
			},
			{
				CargoID: "demo-cargo-2", WeightKg: 1200, TEU: 2,
				From: "tempe-depot", To: "mesa-landing",
				PickupOpenTime: 1800, PickupCloseTime: 7200,
				DropoffOpenTime: 3600, DropoffCloseTime: 14400,
			},
		},
		DrivingTimes: map[[2]string]domain.NonNegativeTimeDelta{
			{"phoenix-hub", "tempe-depot"}:  900,
			{"tempe-depot", "phoenix-hub"}:  900,
			{"phoenix-hub", "mesa-landing"}: 1500,
			{"mesa-landing", "phoenix-hub"}: 1500,
			{"tempe-depot", "mesa-landing"}: 1200,
			{"mesa-landing", "tempe-depot"}: 1200,
		},
	}
}

// enrichWithORSDrivingTimes replaces instance.DrivingTimes with a matrix
// resolved from real addresses when both ORS_API_KEY and
// TERMINAL_ADDRESSES_PATH (a JSON object mapping terminal id to a
// geocodable address) are configured. Without either, instance is left
// untouched and its own DrivingTimes (a static demo matrix, or whatever a
// prior seed stored) are used as-is.
func enrichWithORSDrivingTimes(ctx context.Context, db *sql.DB, instance *ports.ProblemInstance) error {
	apiKey := os.Getenv("ORS_API_KEY")
	addressesPath := os.Getenv("TERMINAL_ADDRESSES_PATH")
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(addressesPath) == "" {
		return nil
	}

	raw, err := os.ReadFile(addressesPath)
	if err != nil {
		return fmt.Errorf("enrich with ORS driving times: read %q: %w", addressesPath, err)
	}
	var addresses map[string]string
	if err := json.Unmarshal(raw, &addresses); err != nil {
		return fmt.Errorf("enrich with ORS driving times: parse %q: %w", addressesPath, err)
	}

	terminalAddresses := make(map[string]string, len(instance.Terminals))
	for id := range instance.Terminals {
		addr, ok := addresses[id]
		if !ok {
			return fmt.Errorf("enrich with ORS driving times: no address configured for terminal %q", id)
		}
		terminalAddresses[id] = addr
	}

	distanceCache := cache.NewSQLDistanceCache(db)
	geocodeCache := cache.NewSQLGeocodeCache(db)
	provider, err := distance.NewORSDistanceProvider(apiKey, distanceCache, geocodeCache)
	if err != nil {
		return fmt.Errorf("enrich with ORS driving times: %w", err)
	}

	order, matrix, err := distance.BuildDrivingTimeMatrix(ctx, provider, terminalAddresses)
	if err != nil {
		return fmt.Errorf("enrich with ORS driving times: %w", err)
	}

	drivingTimes := make(map[[2]string]domain.NonNegativeTimeDelta, len(order)*len(order))
	for i, from := range order {
		for j, to := range order {
			if i == j {
				continue
			}
			drivingTimes[[2]string{from, to}] = matrix[i][j]
		}
	}
	instance.DrivingTimes = drivingTimes

	return nil
}
