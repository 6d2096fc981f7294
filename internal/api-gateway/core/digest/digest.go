package digest

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
)

// Build pairs the sales rows with the separately sourced grand total. The
// total is not checked against the rows.
func Build(records []entity.ReportRecord, grandTotal decimal.Decimal) entity.RevenueDigest {
	out := make([]entity.ReportRecord, len(records))
	copy(out, records)
	return entity.RevenueDigest{Records: out, GrandTotal: grandTotal}
}

// Fetch loads the report rows and the total revenue concurrently and builds
// the digest.
func Fetch(ctx context.Context, svc ports.OrderService) (entity.RevenueDigest, error) {
	var (
		records []entity.ReportRecord
		total   decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = svc.ListReportRecords(gctx)
		if err != nil {
			return fmt.Errorf("list report records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = svc.GetTotalRevenue(gctx)
		if err != nil {
			return fmt.Errorf("get total revenue: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.RevenueDigest{}, err
	}

	return Build(records, total), nil
}
