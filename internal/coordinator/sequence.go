package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

// Step is a single unit of work in a Sequence.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
}

type funcStep struct {
	name string
	fn   func(ctx context.Context) error
}

// NewStep wraps fn as a named Step.
func NewStep(name string, fn func(ctx context.Context) error) Step {
	return &funcStep{name: name, fn: fn}
}

func (s *funcStep) Name() string                      { return s.name }
func (s *funcStep) Execute(ctx context.Context) error { return s.fn(ctx) }

// StepError reports which step of a sequence failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Sequence runs steps in order and stops at the first failure. Nothing is
// compensated: a later step is expected to re-read state instead.
type Sequence struct {
	tableID   string
	operation string
	steps     []Step
	logRepo   tablog.Repository // nil-safe: journaling skipped if nil
}

func NewSequence(tableID, operation string, steps []Step, repo tablog.Repository) *Sequence {
	return &Sequence{tableID: tableID, operation: operation, steps: steps, logRepo: repo}
}

// Run executes the steps. The returned error, if any, is a *StepError.
func (s *Sequence) Run(ctx context.Context) error {
	s.record(ctx, tablog.StatusStarted, "", nil)

	for _, step := range s.steps {
		slog.DebugContext(ctx, "executing step", "table_id", s.tableID, "op", s.operation, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			s.record(ctx, tablog.StatusFailed, step.Name(), []string{err.Error()})
			return &StepError{Step: step.Name(), Err: err}
		}
		s.record(ctx, tablog.StatusStepDone, step.Name(), nil)
	}

	s.record(ctx, tablog.StatusCompleted, "", nil)
	return nil
}

func (s *Sequence) record(ctx context.Context, status tablog.Status, step string, errs []string) {
	if s.logRepo == nil {
		return
	}
	entry := tablog.NewEntry(ctx, s.tableID, s.operation, status, step, errs)
	if err := s.logRepo.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "tab journal write failed", "table_id", s.tableID, "op", s.operation, "error", err)
	}
}
