// Package portsmock provides testify mocks for the core ports.
package portsmock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
)

var _ ports.OrderService = (*OrderService)(nil)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListTables(ctx context.Context) ([]entity.Table, error) {
	args := m.Called(ctx)
	tables, _ := args.Get(0).([]entity.Table)
	return tables, args.Error(1)
}

func (m *OrderService) GetTab(ctx context.Context, tableID string) (*entity.Tab, error) {
	args := m.Called(ctx, tableID)
	tab, _ := args.Get(0).(*entity.Tab)
	return tab, args.Error(1)
}

func (m *OrderService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *OrderService) IncreaseLineQuantity(ctx context.Context, tableID, productID string, delta int) error {
	return m.Called(ctx, tableID, productID, delta).Error(0)
}

func (m *OrderService) SetLineQuantity(ctx context.Context, lineID string, quantity int) error {
	return m.Called(ctx, lineID, quantity).Error(0)
}

func (m *OrderService) DeleteTableLines(ctx context.Context, tableID string) error {
	return m.Called(ctx, tableID).Error(0)
}

func (m *OrderService) ListReportRecords(ctx context.Context) ([]entity.ReportRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]entity.ReportRecord)
	return records, args.Error(1)
}

func (m *OrderService) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	total, _ := args.Get(0).(decimal.Decimal)
	return total, args.Error(1)
}
