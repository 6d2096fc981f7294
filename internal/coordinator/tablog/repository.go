package tablog

import "context"

// Repository persists journal entries. Save appends; it never updates.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}

// Reader lists the journal of one table, oldest first.
type Reader interface {
	ListByTable(ctx context.Context, tableID string) ([]Entry, error)
}
