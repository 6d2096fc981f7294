// Package tab keeps the view of one table's open tab consistent with the
// Order Service.
//
// A Session never computes quantities or totals. Every mutation is followed by
// a full re-read of the tab and the session only ever shows what the service
// returned. Operations on one session run strictly one after the other, in
// call order; the re-read belongs to the mutation, so no mutation is sent
// while another one is still being confirmed.
package tab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/coordinator"
	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

const (
	opLoad       = "load"
	opAddItem    = "add_item"
	opRemoveItem = "remove_item"
	opClose      = "close"
)

// Observer receives a snapshot after every state transition.
type Observer func(State)

// MetricsRecorder records the outcome of session operations.
type MetricsRecorder interface {
	ObserveOperation(op, outcome string, elapsed time.Duration)
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog loads the product list together with the tab.
func WithCatalog(c ports.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithJournal journals every mutation step.
func WithJournal(repo tablog.Repository) Option {
	return func(s *Session) { s.journal = repo }
}

func WithMetrics(m MetricsRecorder) Option {
	return func(s *Session) { s.metrics = m }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithMutationTimeout bounds a mutation together with its re-read. Zero means
// no bound.
func WithMutationTimeout(d time.Duration) Option {
	return func(s *Session) { s.mutationTimeout = d }
}

// Session owns the view of one table's tab.
type Session struct {
	tableID         string
	svc             ports.OrderService
	catalog         ports.Catalog
	journal         tablog.Repository
	metrics         MetricsRecorder
	observers       []Observer
	mutationTimeout time.Duration
	tracer          trace.Tracer

	queue coordinator.Queue

	mu    sync.RWMutex
	state State
}

func NewSession(tableID string, svc ports.OrderService, opts ...Option) *Session {
	s := &Session{
		tableID: tableID,
		svc:     svc,
		tracer:  otel.Tracer("github.com/jcmexdev/venue-tabs/tab"),
		state: State{
			TableID: tableID,
			Tab:     entity.Tab{TableID: tableID},
			Status:  StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) TableID() string { return s.tableID }

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Load fetches the tab (and the catalog, when configured). On failure the
// previous view and status are kept and LastError is LoadFailed. Loading a
// closed session reopens it.
func (s *Session) Load(ctx context.Context) (State, error) {
	return s.run(ctx, func() (State, error) {
		start := time.Now()
		ctx, span := s.tracer.Start(ctx, "tab.load", trace.WithAttributes(attribute.String("table.id", s.tableID)))
		defer span.End()

		prev := s.Snapshot()
		s.update(func(st *State) { st.Status = StatusLoading })

		tab, products, err := s.fetch(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.observe(opLoad, string(LoadFailed), start)
			slog.WarnContext(ctx, "tab load failed", "table_id", s.tableID, "error", err)
			return s.update(func(st *State) {
				st.Status = prev.Status
				st.LastError = &Failure{Kind: LoadFailed, Err: err}
			}), nil
		}

		s.observe(opLoad, "ok", start)
		return s.update(func(st *State) {
			st.Tab = *tab
			if s.catalog != nil {
				st.Products = products
			}
			st.Status = StatusIdle
			st.LastError = nil
		}), nil
	})
}

// AddItem adds one unit of productID to the tab and re-reads it.
func (s *Session) AddItem(ctx context.Context, productID string) (State, error) {
	return s.run(ctx, func() (State, error) {
		return s.mutate(ctx, opAddItem, AddFailed, func(ctx context.Context) error {
			return s.svc.IncreaseLineQuantity(ctx, s.tableID, productID, 1)
		}, nil)
	})
}

// RemoveItem takes one unit off a line and re-reads the tab. The Order
// Service deletes a line whose quantity reaches zero.
func (s *Session) RemoveItem(ctx context.Context, lineID string) (State, error) {
	return s.run(ctx, func() (State, error) {
		cur := s.Snapshot()
		if cur.Status == StatusClosed {
			s.observe(opRemoveItem, "rejected", time.Now())
			return cur, ErrSessionClosed
		}
		line, ok := cur.Tab.Line(lineID)
		if !ok {
			s.observe(opRemoveItem, "rejected", time.Now())
			return cur, fmt.Errorf("%w: %q", ErrLineNotFound, lineID)
		}
		return s.mutate(ctx, opRemoveItem, RemoveFailed, func(ctx context.Context) error {
			return s.svc.SetLineQuantity(ctx, line.ID, line.Quantity-1)
		}, nil)
	})
}

// Close deletes every line of the tab. The session is Closed only once an
// empty tab has been read back.
func (s *Session) Close(ctx context.Context) (State, error) {
	return s.run(ctx, func() (State, error) {
		return s.mutate(ctx, opClose, CloseFailed, func(ctx context.Context) error {
			return s.svc.DeleteTableLines(ctx, s.tableID)
		}, func(t entity.Tab) error {
			if !t.IsEmpty() {
				return fmt.Errorf("tab still has %d lines after close", len(t.Lines))
			}
			return nil
		})
	})
}

// run serializes fn behind every operation submitted before it.
func (s *Session) run(ctx context.Context, fn func() (State, error)) (State, error) {
	var (
		st    State
		opErr error
	)
	if err := s.queue.Do(ctx, func() error {
		st, opErr = fn()
		return nil
	}); err != nil {
		return s.Snapshot(), err
	}
	return st, opErr
}

// mutate sends a mutation then re-reads the tab. The pair runs detached from
// the caller's cancellation: a started mutation is always confirmed.
func (s *Session) mutate(
	ctx context.Context,
	op string,
	kind ErrorKind,
	mutation func(ctx context.Context) error,
	verify func(entity.Tab) error,
) (State, error) {
	start := time.Now()
	if s.Snapshot().Status == StatusClosed {
		s.observe(op, "rejected", start)
		return s.Snapshot(), ErrSessionClosed
	}

	ctx = context.WithoutCancel(ctx)
	if s.mutationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.mutationTimeout)
		defer cancel()
	}
	ctx, span := s.tracer.Start(ctx, "tab."+op, trace.WithAttributes(attribute.String("table.id", s.tableID)))
	defer span.End()

	s.update(func(st *State) { st.Status = StatusMutating })

	var fresh *entity.Tab
	seq := coordinator.NewSequence(s.tableID, op, []coordinator.Step{
		coordinator.NewStep("mutate", mutation),
		coordinator.NewStep("refresh", func(ctx context.Context) error {
			t, err := s.fetchTab(ctx)
			if err != nil {
				return err
			}
			if verify != nil {
				if err := verify(*t); err != nil {
					return err
				}
			}
			fresh = t
			return nil
		}),
	}, s.journal)

	if err := seq.Run(ctx); err != nil {
		if errors.Is(err, entity.ErrProtocolViolation) {
			kind = LoadFailed
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.observe(op, string(kind), start)
		slog.WarnContext(ctx, "tab mutation failed", "table_id", s.tableID, "op", op, "kind", kind, "error", err)
		return s.update(func(st *State) {
			st.Status = StatusIdle
			st.LastError = &Failure{Kind: kind, Err: err}
		}), nil
	}

	next := StatusIdle
	if op == opClose {
		next = StatusClosed
	}
	s.observe(op, "ok", start)
	slog.InfoContext(ctx, "tab mutation applied", "table_id", s.tableID, "op", op, "lines", len(fresh.Lines), "total", fresh.Total.String())
	return s.update(func(st *State) {
		st.Tab = *fresh
		st.Status = next
		st.LastError = nil
	}), nil
}

func (s *Session) fetch(ctx context.Context) (*entity.Tab, []entity.Product, error) {
	var (
		tab      *entity.Tab
		products []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tab, err = s.fetchTab(gctx)
		return err
	})
	if s.catalog != nil {
		g.Go(func() error {
			var err error
			products, err = s.catalog.Products(gctx)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tab, products, nil
}

func (s *Session) fetchTab(ctx context.Context) (*entity.Tab, error) {
	t, err := s.svc.GetTab(ctx, s.tableID)
	if err != nil {
		return nil, fmt.Errorf("get tab: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: empty tab in response", entity.ErrProtocolViolation)
	}
	if err := t.Validate(s.tableID); err != nil {
		return nil, err
	}
	out := t.Clone()
	out.TableID = s.tableID
	return &out, nil
}

// update applies fn under the lock and notifies observers with the result.
func (s *Session) update(fn func(*State)) State {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	s.mu.Unlock()

	for _, o := range s.observers {
		o(snap.clone())
	}
	return snap
}

func (s *Session) observe(op, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, outcome, time.Since(start))
	}
}
