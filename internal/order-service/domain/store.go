// Package domain holds the Order Service rules: lines are created on the first
// add, removed when their quantity reaches zero, priced on the server, and
// folded into the sales report when a table is closed.
package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("order line not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

type Table struct {
	ID     string
	Number string
}

type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

type Line struct {
	ID        string
	TableID   string
	Product   Product
	Quantity  int
	LineTotal decimal.Decimal
}

type Tab struct {
	TableID     string
	TableNumber string
	Lines       []Line
	Total       decimal.Decimal
}

type TableSummary struct {
	Table
	OpenAmount decimal.Decimal
}

type ReportRow struct {
	ID        string
	Product   Product
	UnitsSold int
	Revenue   decimal.Decimal
}

type line struct {
	id        string
	tableID   string
	productID string
	quantity  int
}

// Store is an in-memory Order Service. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	tables   []Table
	products []Product
	lines    []*line
	report   []*ReportRow
	revenue  decimal.Decimal
	newID    func() string
}

func NewStore(tables []Table, products []Product) *Store {
	return &Store{
		tables:   append([]Table(nil), tables...),
		products: append([]Product(nil), products...),
		newID:    uuid.NewString,
	}
}

// NewSeededStore returns a store with a small venue: duplicate feed entries,
// overflow tables and a short menu.
func NewSeededStore() *Store {
	return NewStore(SeedTables(), SeedProducts())
}

func SeedTables() []Table {
	return []Table{
		{ID: "1", Number: "1"},
		{ID: "2", Number: "2"},
		{ID: "3", Number: "3"},
		{ID: "10", Number: "10"},
		{ID: "11", Number: "1U"},
		{ID: "12", Number: "2U"},
		{ID: "13", Number: "2"},
		{ID: "14", Number: "Bar"},
	}
}

func SeedProducts() []Product {
	return []Product{
		{ID: "1", Name: "Tea", UnitPrice: decimal.RequireFromString("25.00")},
		{ID: "2", Name: "Turkish Coffee", UnitPrice: decimal.RequireFromString("60.00")},
		{ID: "3", Name: "Lemonade", UnitPrice: decimal.RequireFromString("45.50")},
		{ID: "4", Name: "Toast", UnitPrice: decimal.RequireFromString("90.00")},
	}
}

func (s *Store) Tables() []TableSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TableSummary, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, TableSummary{Table: t, OpenAmount: s.tabLocked(t).Total})
	}
	return out
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...)
}

func (s *Store) Tab(tableID string) (Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.table(tableID)
	if !ok {
		return Tab{}, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return s.tabLocked(t), nil
}

// IncreaseLineQuantity adds delta units of a product to a table's tab. A line
// that drops to zero or below is removed.
func (s *Store) IncreaseLineQuantity(tableID, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.table(tableID); !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	if _, ok := s.product(productID); !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if delta == 0 {
		return fmt.Errorf("%w: delta must not be zero", ErrInvalidQuantity)
	}

	for i, l := range s.lines {
		if l.tableID == tableID && l.productID == productID {
			l.quantity += delta
			if l.quantity <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			}
			return nil
		}
	}
	if delta < 0 {
		return fmt.Errorf("%w: no line for product %s", ErrLineNotFound, productID)
	}
	s.lines = append(s.lines, &line{id: s.newID(), tableID: tableID, productID: productID, quantity: delta})
	return nil
}

// SetLineQuantity overwrites a line's quantity. Zero removes the line.
func (s *Store) SetLineQuantity(lineID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.lines {
		if l.id != lineID {
			continue
		}
		if quantity == 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			l.quantity = quantity
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

// DeleteTableLines settles a table: its lines are added to the sales report
// and the revenue, then removed.
func (s *Store) DeleteTableLines(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.table(tableID); !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.tableID != tableID {
			kept = append(kept, l)
			continue
		}
		p, _ := s.product(l.productID)
		amount := p.UnitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
		s.recordSale(p, l.quantity, amount)
		s.revenue = s.revenue.Add(amount)
	}
	for i := len(kept); i < len(s.lines); i++ {
		s.lines[i] = nil
	}
	s.lines = kept
	return nil
}

func (s *Store) Report() []ReportRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ReportRow, 0, len(s.report))
	for _, r := range s.report {
		out = append(out, *r)
	}
	return out
}

func (s *Store) TotalRevenue() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue
}

func (s *Store) recordSale(p Product, units int, amount decimal.Decimal) {
	for _, r := range s.report {
		if r.Product.ID == p.ID {
			r.UnitsSold += units
			r.Revenue = r.Revenue.Add(amount)
			return
		}
	}
	s.report = append(s.report, &ReportRow{ID: s.newID(), Product: p, UnitsSold: units, Revenue: amount})
}

func (s *Store) tabLocked(t Table) Tab {
	tab := Tab{TableID: t.ID, TableNumber: t.Number, Lines: []Line{}, Total: decimal.Zero}
	for _, l := range s.lines {
		if l.tableID != t.ID {
			continue
		}
		p, _ := s.product(l.productID)
		total := p.UnitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
		tab.Lines = append(tab.Lines, Line{ID: l.id, TableID: l.tableID, Product: p, Quantity: l.quantity, LineTotal: total})
		tab.Total = tab.Total.Add(total)
	}
	return tab
}

func (s *Store) table(id string) (Table, bool) {
	for _, t := range s.tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

func (s *Store) product(id string) (Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
