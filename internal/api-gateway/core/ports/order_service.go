package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
)

// OrderService is the remote service that owns tables, products, order lines
// and reports. Every method is a network round trip.
type OrderService interface {
	ListTables(ctx context.Context) ([]entity.Table, error)
	GetTab(ctx context.Context, tableID string) (*entity.Tab, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)

	// IncreaseLineQuantity adds delta units of productID to the table's tab,
	// creating the line when it does not exist yet.
	IncreaseLineQuantity(ctx context.Context, tableID, productID string, delta int) error
	// SetLineQuantity overwrites a line's quantity. Zero deletes the line.
	SetLineQuantity(ctx context.Context, lineID string, quantity int) error
	DeleteTableLines(ctx context.Context, tableID string) error

	ListReportRecords(ctx context.Context) ([]entity.ReportRecord, error)
	GetTotalRevenue(ctx context.Context) (decimal.Decimal, error)
}
