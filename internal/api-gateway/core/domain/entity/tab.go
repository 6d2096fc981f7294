package entity

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrProtocolViolation marks data returned by the Order Service that breaks
// its own contract. It is never propagated as state.
var ErrProtocolViolation = errors.New("order service protocol violation")

// OrderLine is one product-and-quantity entry of a tab. LineTotal is computed
// by the Order Service.
type OrderLine struct {
	ID        string
	TableID   string
	ProductID string
	Product   Product
	Quantity  int
	LineTotal decimal.Decimal
}

// Tab is the open order of a table. Lines keep the order the service returned
// them in and Total is authoritative.
type Tab struct {
	TableID     string
	TableNumber string
	Lines       []OrderLine
	Total       decimal.Decimal
}

func (t Tab) IsEmpty() bool { return len(t.Lines) == 0 }

// Line returns the line with the given id.
func (t Tab) Line(lineID string) (OrderLine, bool) {
	for _, l := range t.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return OrderLine{}, false
}

// Clone returns a copy that shares no slice memory with t.
func (t Tab) Clone() Tab {
	out := t
	if t.Lines != nil {
		out.Lines = make([]OrderLine, len(t.Lines))
		copy(out.Lines, t.Lines)
	}
	return out
}

// Validate checks the tab returned for tableID against the service contract.
func (t Tab) Validate(tableID string) error {
	if t.TableID != "" && t.TableID != tableID {
		return fmt.Errorf("%w: tab for table %q returned for table %q", ErrProtocolViolation, t.TableID, tableID)
	}
	for _, l := range t.Lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: line %q has quantity %d", ErrProtocolViolation, l.ID, l.Quantity)
		}
	}
	return nil
}
