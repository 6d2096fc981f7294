// Package tablog defines the journal of tab mutations.
//
// Every mutation a tab session runs against the Order Service is journaled as
// a series of rows: STARTED, one STEP_DONE per finished step, then COMPLETED
// or FAILED. The journal is append-only and carries the trace and span ids of
// the operation so a row can be joined with its distributed trace.
package tablog

import "time"

// Status is the lifecycle state of a journaled operation.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusStepDone  Status = "STEP_DONE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is a single journal row.
type Entry struct {
	// TableID identifies the tab the operation ran against.
	TableID string

	// Operation is the session operation, e.g. "add_item" or "close".
	Operation string

	Status Status

	// CurrentStep is the step that just finished or failed.
	CurrentStep string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
