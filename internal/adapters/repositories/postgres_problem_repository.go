package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/ports"
)

// PostgresProblemRepository is the same ports.ProblemRepository contract as
// SQLiteProblemRepository, against the shared Postgres store cmd/dbtool
// migrates: identical schema, $n placeholders instead of SQLite's ?.
type PostgresProblemRepository struct {
	db *sql.DB
}

func NewPostgresProblemRepository(db *sql.DB) *PostgresProblemRepository {
	return &PostgresProblemRepository{db: db}
}

func (r *PostgresProblemRepository) Save(ctx context.Context, runID string, instance ports.ProblemInstance) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save problem instance: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"terminals", "trucks", "bookings", "problem_driving_times"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE run_id = $1;`, table), runID); err != nil {
			return fmt.Errorf("save problem instance: clear %s: %w", table, err)
		}
	}

	for id, window := range instance.Terminals {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO terminals (run_id, terminal_id, open_time, close_time) VALUES ($1, $2, $3, $4);
		`, runID, id, int64(window.Open), int64(window.Close))
		if err != nil {
			return fmt.Errorf("save problem instance: insert terminal %q: %w", id, err)
		}
	}

	for id, truck := range instance.Trucks {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO trucks (run_id, truck_id, starting_terminal, max_weight_kg, max_teu) VALUES ($1, $2, $3, $4, $5);
		`, runID, id, truck.StartingTerminal, truck.MaxWeightKg, truck.MaxTEU)
		if err != nil {
			return fmt.Errorf("save problem instance: insert truck %q: %w", id, err)
		}
	}

	for _, booking := range instance.Bookings {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (
			run_id, cargo_id, from_terminal, to_terminal, weight_kg, teu,
			pickup_open_time, pickup_close_time, dropoff_open_time, dropoff_close_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`, runID, booking.CargoID, booking.From, booking.To, booking.WeightKg, booking.TEU,
			int64(booking.PickupOpenTime), int64(booking.PickupCloseTime),
			int64(booking.DropoffOpenTime), int64(booking.DropoffCloseTime))
		if err != nil {
			return fmt.Errorf("save problem instance: insert booking %q: %w", booking.CargoID, err)
		}
	}

	for pair, dt := range instance.DrivingTimes {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO problem_driving_times (run_id, from_terminal, to_terminal, driving_time) VALUES ($1, $2, $3, $4);
		`, runID, pair[0], pair[1], int64(dt))
		if err != nil {
			return fmt.Errorf("save problem instance: insert driving time (%s, %s): %w", pair[0], pair[1], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save problem instance: commit tx: %w", err)
	}
	return nil
}

func (r *PostgresProblemRepository) Load(ctx context.Context, runID string) (ports.ProblemInstance, error) {
	instance := ports.ProblemInstance{
		Terminals:    make(map[string]ports.TerminalSeed),
		Trucks:       make(map[string]ports.TruckSeed),
		DrivingTimes: make(map[[2]string]domain.NonNegativeTimeDelta),
	}

	terminalRows, err := r.db.QueryContext(ctx, `
	SELECT terminal_id, open_time, close_time FROM terminals WHERE run_id = $1;
	`, runID)
	if err != nil {
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: query terminals: %w", err)
	}
	for terminalRows.Next() {
		var id string
		var open, close int64
		if err := terminalRows.Scan(&id, &open, &close); err != nil {
			terminalRows.Close()
			return ports.ProblemInstance{}, fmt.Errorf("load problem instance: scan terminal: %w", err)
		}
		instance.Terminals[id] = ports.TerminalSeed{Open: domain.Time(open), Close: domain.Time(close)}
	}
	if err := terminalRows.Err(); err != nil {
		terminalRows.Close()
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: iterate terminals: %w", err)
	}
	terminalRows.Close()

	truckRows, err := r.db.QueryContext(ctx, `
	SELECT truck_id, starting_terminal, max_weight_kg, max_teu FROM trucks WHERE run_id = $1;
	`, runID)
	if err != nil {
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: query trucks: %w", err)
	}
	for truckRows.Next() {
		var id, startingTerminal string
		var maxWeight, maxTEU int
		if err := truckRows.Scan(&id, &startingTerminal, &maxWeight, &maxTEU); err != nil {
			truckRows.Close()
			return ports.ProblemInstance{}, fmt.Errorf("load problem instance: scan truck: %w", err)
		}
		instance.Trucks[id] = ports.TruckSeed{StartingTerminal: startingTerminal, MaxWeightKg: maxWeight, MaxTEU: maxTEU}
	}
	if err := truckRows.Err(); err != nil {
		truckRows.Close()
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: iterate trucks: %w", err)
	}
	truckRows.Close()

	bookingRows, err := r.db.QueryContext(ctx, `
	SELECT cargo_id, from_terminal, to_terminal, weight_kg, teu,
		pickup_open_time, pickup_close_time, dropoff_open_time, dropoff_close_time
	FROM bookings WHERE run_id = $1;
	`, runID)
	if err != nil {
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: query bookings: %w", err)
	}
	for bookingRows.Next() {
		var cargoID, from, to string
		var weight, teu int
		var pickupOpen, pickupClose, dropoffOpen, dropoffClose int64
		if err := bookingRows.Scan(&cargoID, &from, &to, &weight, &teu, &pickupOpen, &pickupClose, &dropoffOpen, &dropoffClose); err != nil {
			bookingRows.Close()
			return ports.ProblemInstance{}, fmt.Errorf("load problem instance: scan booking: %w", err)
		}
		instance.Bookings = append(instance.Bookings, ports.BookingSeed{
			CargoID:          cargoID,
			WeightKg:         weight,
			TEU:              teu,
			From:             from,
			To:               to,
			PickupOpenTime:   domain.Time(pickupOpen),
			PickupCloseTime:  domain.Time(pickupClose),
			DropoffOpenTime:  domain.Time(dropoffOpen),
			DropoffCloseTime: domain.Time(dropoffClose),
		})
	}
	if err := bookingRows.Err(); err != nil {
		bookingRows.Close()
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: iterate bookings: %w", err)
	}
	bookingRows.Close()

	driveRows, err := r.db.QueryContext(ctx, `
	SELECT from_terminal, to_terminal, driving_time FROM problem_driving_times WHERE run_id = $1;
	`, runID)
	if err != nil {
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: query driving times: %w", err)
	}
	defer driveRows.Close()
	for driveRows.Next() {
		var from, to string
		var dt int64
		if err := driveRows.Scan(&from, &to, &dt); err != nil {
			return ports.ProblemInstance{}, fmt.Errorf("load problem instance: scan driving time: %w", err)
		}
		instance.DrivingTimes[[2]string{from, to}] = domain.NonNegativeTimeDelta(dt)
	}
	if err := driveRows.Err(); err != nil {
		return ports.ProblemInstance{}, fmt.Errorf("load problem instance: iterate driving times: %w", err)
	}

	return instance, nil
}
