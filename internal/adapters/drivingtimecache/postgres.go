package drivingtimecache

import (
	"context"
	"database/sql"
	"fmt"

	"chameleon-scheduler/internal/domain"
)

// Postgres is a ports.DrivingTimeCache backed by a driving_times table,
// the same schema shape as the teacher's SQLDistanceCache (origin,
// destination) pair but keyed on (from_terminal, to_terminal) dense
// integer ids. Unlike SQLite it is not mirrored in memory: Get issues a
// query per call, which is the right tradeoff when the matrix is shared
// and written to by many concurrent optimizer workers rather than owned
// by a single process.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps db. Callers are expected to have already run the
// driving_times migration (see cmd/dbtool).
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(from, to domain.TerminalID) (domain.NonNegativeTimeDelta, bool) {
	var dt int64
	err := p.db.QueryRow(`
	SELECT driving_time FROM driving_times WHERE from_terminal = $1 AND to_terminal = $2;
	`, int(from), int(to)).Scan(&dt)
	if err != nil {
		return 0, false
	}
	return domain.NonNegativeTimeDelta(dt), true
}

func (p *Postgres) Set(ctx context.Context, from, to domain.TerminalID, dt domain.NonNegativeTimeDelta) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO driving_times (from_terminal, to_terminal, driving_time)
	VALUES ($1, $2, $3)
	ON CONFLICT (from_terminal, to_terminal) DO UPDATE SET driving_time = EXCLUDED.driving_time;
	`, int(from), int(to), int64(dt))
	if err != nil {
		return fmt.Errorf("postgres driving time cache: set (%d, %d): %w", from, to, err)
	}
	return nil
}

func (p *Postgres) Pairs(ctx context.Context) ([][2]domain.TerminalID, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT from_terminal, to_terminal FROM driving_times;`)
	if err != nil {
		return nil, fmt.Errorf("postgres driving time cache: query pairs: %w", err)
	}
	defer rows.Close()

	var out [][2]domain.TerminalID
	for rows.Next() {
		var from, to int
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("postgres driving time cache: scan pair: %w", err)
		}
		out = append(out, [2]domain.TerminalID{domain.TerminalID(from), domain.TerminalID(to)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres driving time cache: row iteration: %w", err)
	}
	return out, nil
}
