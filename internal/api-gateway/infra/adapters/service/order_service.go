package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/order-service/domain"
)

// Ensure fakeOrderService implements the port at compile time.
var _ ports.OrderService = (*fakeOrderService)(nil)

// fakeOrderService runs the Order Service rules in process. It backs local
// development and the router tests.
type fakeOrderService struct {
	store *domain.Store
}

// NewFakeOrderService returns an in-process OrderService over store. A nil
// store is replaced with the seeded venue.
func NewFakeOrderService(store *domain.Store) ports.OrderService {
	if store == nil {
		store = domain.NewSeededStore()
	}
	return &fakeOrderService{store: store}
}

func (f *fakeOrderService) ListTables(ctx context.Context) ([]entity.Table, error) {
	tables := f.store.Tables()
	out := make([]entity.Table, len(tables))
	for i, t := range tables {
		out[i] = entity.Table{ID: t.ID, Number: t.Number, OpenAmount: t.OpenAmount}
	}
	return out, nil
}

func (f *fakeOrderService) GetTab(ctx context.Context, tableID string) (*entity.Tab, error) {
	t, err := f.store.Tab(tableID)
	if err != nil {
		return nil, fmt.Errorf("memory GetTab: %w", err)
	}
	tab := &entity.Tab{
		TableID:     t.TableID,
		TableNumber: t.TableNumber,
		Lines:       make([]entity.OrderLine, len(t.Lines)),
		Total:       t.Total,
	}
	for i, l := range t.Lines {
		tab.Lines[i] = entity.OrderLine{
			ID:        l.ID,
			TableID:   l.TableID,
			ProductID: l.Product.ID,
			Product:   productFromDomain(l.Product),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		}
	}
	return tab, nil
}

func (f *fakeOrderService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products := f.store.Products()
	out := make([]entity.Product, len(products))
	for i, p := range products {
		out[i] = productFromDomain(p)
	}
	return out, nil
}

func (f *fakeOrderService) IncreaseLineQuantity(ctx context.Context, tableID, productID string, delta int) error {
	if err := f.store.IncreaseLineQuantity(tableID, productID, delta); err != nil {
		return fmt.Errorf("memory IncreaseLineQuantity: %w", err)
	}
	return nil
}

func (f *fakeOrderService) SetLineQuantity(ctx context.Context, lineID string, quantity int) error {
	if err := f.store.SetLineQuantity(lineID, quantity); err != nil {
		return fmt.Errorf("memory SetLineQuantity: %w", err)
	}
	return nil
}

func (f *fakeOrderService) DeleteTableLines(ctx context.Context, tableID string) error {
	if err := f.store.DeleteTableLines(tableID); err != nil {
		return fmt.Errorf("memory DeleteTableLines: %w", err)
	}
	return nil
}

func (f *fakeOrderService) ListReportRecords(ctx context.Context) ([]entity.ReportRecord, error) {
	rows := f.store.Report()
	out := make([]entity.ReportRecord, len(rows))
	for i, r := range rows {
		out[i] = entity.ReportRecord{
			ID:        r.ID,
			Product:   productFromDomain(r.Product),
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue,
		}
	}
	return out, nil
}

func (f *fakeOrderService) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.store.TotalRevenue(), nil
}

func productFromDomain(p domain.Product) entity.Product {
	return entity.Product{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}
}
