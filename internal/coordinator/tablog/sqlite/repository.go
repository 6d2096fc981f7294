// Package sqlite provides a SQLite-backed implementation of tablog.Repository.
//
// WAL mode is enabled on Open so that the journal can be read while sessions
// keep appending to it.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"

	// pure-Go driver, no CGO
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tab_log (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    table_id        TEXT        NOT NULL,
    operation       TEXT        NOT NULL,
    status          TEXT        NOT NULL,
    current_step    TEXT        NOT NULL DEFAULT '',
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tab_log_table_id ON tab_log(table_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_tab_log_trace_id ON tab_log(trace_id);
`

// ErrNotFound is returned when a table has no journal rows.
var ErrNotFound = errors.New("sqlite: no journal entries")

const timeLayout = "2006-01-02T15:04:05.999999999Z"

// Repository is the SQLite implementation of tablog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/tablog.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// single writer
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
func (r *Repository) Save(ctx context.Context, entry *tablog.Entry) error {
	const q = `
		INSERT INTO tab_log
			(table_id, operation, status, current_step, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.TableID,
		entry.Operation,
		string(entry.Status),
		entry.CurrentStep,
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save journal entry for table %q: %w", entry.TableID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for a table.
func (r *Repository) GetLatest(ctx context.Context, tableID string) (*tablog.Entry, error) {
	const q = `
		SELECT table_id, operation, status, current_step, error_messages,
		       trace_id, span_id, updated_at
		FROM   tab_log
		WHERE  table_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for table %q", ErrNotFound, tableID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", tableID, err)
	}
	return entry, nil
}

// ListByTable returns every entry of a table, oldest first.
func (r *Repository) ListByTable(ctx context.Context, tableID string) ([]tablog.Entry, error) {
	const q = `
		SELECT table_id, operation, status, current_step, error_messages,
		       trace_id, span_id, updated_at
		FROM   tab_log
		WHERE  table_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, tableID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list journal for %q: %w", tableID, err)
	}
	defer rows.Close()

	var out []tablog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan journal row: %w", err)
		}
		out = append(out, *entry)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*tablog.Entry, error) {
	var entry tablog.Entry
	var updatedAt string
	err := row.Scan(
		&entry.TableID,
		&entry.Operation,
		&entry.Status,
		&entry.CurrentStep,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.UpdatedAt, err = parseRFC3339(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
