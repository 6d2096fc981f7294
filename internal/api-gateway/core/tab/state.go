package tab

import (
	"errors"
	"fmt"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusMutating
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusLoading:
		return "LOADING"
	case StatusMutating:
		return "MUTATING"
	case StatusClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ErrorKind classifies the failure of the last session operation.
type ErrorKind string

const (
	LoadFailed   ErrorKind = "LOAD_FAILED"
	AddFailed    ErrorKind = "ADD_FAILED"
	RemoveFailed ErrorKind = "REMOVE_FAILED"
	CloseFailed  ErrorKind = "CLOSE_FAILED"
)

// Failure is the error recorded on a session when an Order Service call
// fails. Err carries the cause.
type Failure struct {
	Kind ErrorKind
	Err  error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Kind, f.Err) }
func (f *Failure) Unwrap() error { return f.Err }

var (
	// ErrSessionClosed is returned by mutations on a closed tab. Load reopens
	// the session.
	ErrSessionClosed = errors.New("tab: session closed")
	// ErrLineNotFound is returned by RemoveItem for a line that is not on the
	// current tab.
	ErrLineNotFound = errors.New("tab: line not found")
)

// State is a snapshot of a Session. It shares no memory with the session.
type State struct {
	TableID   string
	Tab       entity.Tab
	Products  []entity.Product
	Status    Status
	LastError *Failure
}

func (s State) clone() State {
	out := s
	out.Tab = s.Tab.Clone()
	if s.Products != nil {
		out.Products = make([]entity.Product, len(s.Products))
		copy(out.Products, s.Products)
	}
	return out
}
