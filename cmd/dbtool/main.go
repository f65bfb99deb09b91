package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"chameleon-scheduler/internal/adapters/repositories"
	"chameleon-scheduler/internal/config"
	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/platform/db"
	"chameleon-scheduler/internal/ports"
)

// dbtool migrates the shared Postgres schema and, with the seed
// subcommand, mints a synthetic booking set for a demo run. Usage:
//
//	dbtool migrate
//	RUN_ID=demo BOOKINGS_PATH=data/seeds/bookings.json dbtool seed
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cmd := "migrate"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	switch cmd {
	case "migrate":
		if err := migrate(conn); err != nil {
			log.Fatal(err)
		}
	case "seed":
		if err := seed(conn); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown subcommand %q (want migrate or seed)", cmd)
	}
}

func migrate(conn *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

// seed mints a uuid cargo id for every booking in BOOKINGS_PATH, derives a
// terminal set from the bookings' from/to fields (open around the clock),
// defaults every terminal pair's driving time to DEFAULT_DRIVING_TIME_SECONDS,
// and persists the resulting instance under RUN_ID.
func seed(conn *sql.DB) error {
	runID := config.Get("RUN_ID", "demo")
	bookingsPath := config.Get("BOOKINGS_PATH", "data/seeds/bookings.json")
	planningEnd := config.GetInt("PLANNING_HORIZON_SECONDS", 24*3600)
	defaultDrive := domain.NonNegativeTimeDelta(config.GetInt("DEFAULT_DRIVING_TIME_SECONDS", 900))

	raw, err := repositories.SeedBookingsFromJSON(bookingsPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	terminals := make(map[string]ports.TerminalSeed)
	bookings := make([]ports.BookingSeed, 0, len(raw))
	for cargoID, b := range raw {
		terminals[b.From] = ports.TerminalSeed{Open: 0, Close: domain.Time(planningEnd)}
		terminals[b.To] = ports.TerminalSeed{Open: 0, Close: domain.Time(planningEnd)}
		bookings = append(bookings, ports.BookingSeed{
			CargoID: cargoID, WeightKg: b.WeightKg, TEU: b.TEU,
			From: b.From, To: b.To,
			PickupOpenTime:   domain.Time(b.PickupOpenTime),
			PickupCloseTime:  domain.Time(b.PickupCloseTime),
			DropoffOpenTime:  domain.Time(b.DropoffOpenTime),
			DropoffCloseTime: domain.Time(b.DropoffCloseTime),
		})
	}

	drivingTimes := make(map[[2]string]domain.NonNegativeTimeDelta)
	for from := range terminals {
		for to := range terminals {
			if from == to {
				continue
			}
			drivingTimes[[2]string{from, to}] = defaultDrive
		}
	}

	instance := ports.ProblemInstance{
		Terminals:    terminals,
		Trucks:       map[string]ports.TruckSeed{},
		Bookings:     bookings,
		DrivingTimes: drivingTimes,
	}

	repo := repositories.NewPostgresProblemRepository(conn)
	if err := repo.Save(context.Background(), runID, instance); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Printf("Seeded %d bookings across %d terminals under run_id=%s", len(bookings), len(terminals), runID)
	return nil
}
