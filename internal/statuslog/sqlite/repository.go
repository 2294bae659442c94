// Package sqlite provides a SQLite-backed implementation of statuslog.Repository.
//
// WAL mode is enabled on Open so the HTTP handler reading an order's history
// never blocks a concurrent status update being recorded.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"

	// Pure-Go driver, no CGO.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS status_updates (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id         TEXT NOT NULL,
    requested_status TEXT NOT NULL,
    outcome          TEXT NOT NULL,
    error_message    TEXT NOT NULL DEFAULT '',
    trace_id         TEXT NOT NULL DEFAULT '',
    span_id          TEXT NOT NULL DEFAULT '',
    -- RFC3339 TEXT, SQLite has no datetime type.
    requested_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_status_updates_order_id ON status_updates(order_id, requested_at);
`

// Repository is the SQLite implementation of statuslog.Repository.
type Repository struct {
	db *sql.DB
}

var _ statuslog.Repository = (*Repository)(nil)

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/status.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// Single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends an entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *statuslog.Entry) error {
	const q = `
		INSERT INTO status_updates
			(order_id, requested_status, outcome, error_message, trace_id, span_id, requested_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.RequestedStatus,
		string(entry.Outcome),
		entry.Error,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.RequestedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save status update for %q: %w", entry.OrderID, err)
	}
	return nil
}

// ListByOrder returns every attempt recorded for orderID, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]statuslog.Entry, error) {
	const q = `
		SELECT order_id, requested_status, outcome, error_message, trace_id, span_id, requested_at
		FROM   status_updates
		WHERE  order_id = ?
		ORDER  BY requested_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list status updates for %q: %w", orderID, err)
	}
	defer rows.Close()

	entries := []statuslog.Entry{}
	for rows.Next() {
		var e statuslog.Entry
		var requestedAt string
		if err := rows.Scan(
			&e.OrderID,
			&e.RequestedStatus,
			&e.Outcome,
			&e.Error,
			&e.TraceID,
			&e.SpanID,
			&requestedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan status update: %w", err)
		}
		if e.RequestedAt, err = parseRFC3339(requestedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate status updates: %w", err)
	}
	return entries, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
