package drivingtimecache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"chameleon-scheduler/internal/domain"
)

// SQLite is a file-backed ports.DrivingTimeCache for single-box demo runs:
// a durable matrix that survives process restarts, mirroring how
// SQLDistanceCache caches origin/destination lookups except keyed on the
// dense terminal ids a generator assigns within one run. Reads are served
// from an in-memory mirror loaded once at construction, since the matrix
// is read far more often than it is written (every mutation attempt reads
// it; only SetDrivingTimes writes).
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
	m  map[[2]domain.TerminalID]domain.NonNegativeTimeDelta
}

// NewSQLite loads the existing driving_times table (if any) into memory and
// returns a cache backed by db for subsequent writes.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	c := &SQLite{db: db, m: make(map[[2]domain.TerminalID]domain.NonNegativeTimeDelta)}

	rows, err := db.QueryContext(ctx, `SELECT from_terminal, to_terminal, driving_time FROM driving_times;`)
	if err != nil {
		return nil, fmt.Errorf("sqlite driving time cache: load existing rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to int
		var dt int64
		if err := rows.Scan(&from, &to, &dt); err != nil {
			return nil, fmt.Errorf("sqlite driving time cache: scan row: %w", err)
		}
		c.m[[2]domain.TerminalID{domain.TerminalID(from), domain.TerminalID(to)}] = domain.NonNegativeTimeDelta(dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite driving time cache: row iteration: %w", err)
	}

	return c, nil
}

func (c *SQLite) Get(from, to domain.TerminalID) (domain.NonNegativeTimeDelta, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dt, ok := c.m[[2]domain.TerminalID{from, to}]
	return dt, ok
}

func (c *SQLite) Set(ctx context.Context, from, to domain.TerminalID, dt domain.NonNegativeTimeDelta) error {
	_, err := c.db.ExecContext(ctx, `
	INSERT INTO driving_times (from_terminal, to_terminal, driving_time)
	VALUES (?, ?, ?)
	ON CONFLICT (from_terminal, to_terminal) DO UPDATE SET driving_time = excluded.driving_time;
	`, int(from), int(to), int64(dt))
	if err != nil {
		return fmt.Errorf("sqlite driving time cache: set (%d, %d): %w", from, to, err)
	}

	c.mu.Lock()
	c.m[[2]domain.TerminalID{from, to}] = dt
	c.mu.Unlock()

	return nil
}

func (c *SQLite) Pairs(context.Context) ([][2]domain.TerminalID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([][2]domain.TerminalID, 0, len(c.m))
	for pair := range c.m {
		out = append(out, pair)
	}
	return out, nil
}
