package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/orderrpc"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
)

// GRPCOrderService talks to the Order Service over gRPC.
type GRPCOrderService struct {
	client orderrpc.OrderClient
}

func NewGRPCOrderService(client orderrpc.OrderClient) ports.OrderService {
	return &GRPCOrderService{client: client}
}

var _ ports.OrderService = (*GRPCOrderService)(nil)

func (s *GRPCOrderService) ListTables(ctx context.Context) ([]entity.Table, error) {
	res, err := s.client.ListTables(ctx, &orderrpc.ListTablesRequest{})
	if err != nil {
		return nil, fmt.Errorf("grpc ListTables: %w", err)
	}
	out := make([]entity.Table, 0, len(res.Tables))
	for _, t := range res.Tables {
		if t == nil {
			continue
		}
		out = append(out, entity.Table{ID: t.Id, Number: t.Number, OpenAmount: t.OpenAmount})
	}
	return out, nil
}

func (s *GRPCOrderService) GetTab(ctx context.Context, tableID string) (*entity.Tab, error) {
	res, err := s.client.GetTab(ctx, &orderrpc.GetTabRequest{TableId: tableID})
	if err != nil {
		return nil, fmt.Errorf("grpc GetTab: %w", err)
	}
	pt := res.GetTab()
	if pt == nil {
		return nil, fmt.Errorf("grpc GetTab: empty tab in response")
	}
	return mapRPCTabToEntity(pt), nil
}

func (s *GRPCOrderService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	res, err := s.client.ListProducts(ctx, &orderrpc.ListProductsRequest{})
	if err != nil {
		return nil, fmt.Errorf("grpc ListProducts: %w", err)
	}
	out := make([]entity.Product, 0, len(res.Products))
	for _, p := range res.Products {
		if p == nil {
			continue
		}
		out = append(out, mapRPCProductToEntity(p))
	}
	return out, nil
}

func (s *GRPCOrderService) IncreaseLineQuantity(ctx context.Context, tableID, productID string, delta int) error {
	req := &orderrpc.IncreaseLineQuantityRequest{TableId: tableID, ProductId: productID, Delta: int32(delta)}
	if _, err := s.client.IncreaseLineQuantity(mutationContext(ctx), req); err != nil {
		return fmt.Errorf("grpc IncreaseLineQuantity: %w", err)
	}
	return nil
}

func (s *GRPCOrderService) SetLineQuantity(ctx context.Context, lineID string, quantity int) error {
	req := &orderrpc.SetLineQuantityRequest{LineId: lineID, Quantity: int32(quantity)}
	if _, err := s.client.SetLineQuantity(mutationContext(ctx), req); err != nil {
		return fmt.Errorf("grpc SetLineQuantity: %w", err)
	}
	return nil
}

func (s *GRPCOrderService) DeleteTableLines(ctx context.Context, tableID string) error {
	req := &orderrpc.DeleteTableLinesRequest{TableId: tableID}
	if _, err := s.client.DeleteTableLines(mutationContext(ctx), req); err != nil {
		return fmt.Errorf("grpc DeleteTableLines: %w", err)
	}
	return nil
}

func (s *GRPCOrderService) ListReportRecords(ctx context.Context) ([]entity.ReportRecord, error) {
	res, err := s.client.ListReportRecords(ctx, &orderrpc.ListReportRecordsRequest{})
	if err != nil {
		return nil, fmt.Errorf("grpc ListReportRecords: %w", err)
	}
	out := make([]entity.ReportRecord, 0, len(res.Records))
	for _, r := range res.Records {
		if r == nil {
			continue
		}
		out = append(out, entity.ReportRecord{
			ID:        r.Id,
			Product:   mapRPCProductToEntity(r.GetProduct()),
			UnitsSold: int(r.UnitsSold),
			Revenue:   r.Revenue,
		})
	}
	return out, nil
}

func (s *GRPCOrderService) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	res, err := s.client.GetTotalRevenue(ctx, &orderrpc.GetTotalRevenueRequest{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("grpc GetTotalRevenue: %w", err)
	}
	return res.Total, nil
}

// mutationContext gives the call a fresh idempotency key. The client
// interceptor sends it along with the request id.
func mutationContext(ctx context.Context) context.Context {
	return interceptors.WithIdempotencyKey(ctx, uuid.NewString())
}

func mapRPCTabToEntity(pt *orderrpc.Tab) *entity.Tab {
	tab := &entity.Tab{
		TableID:     pt.TableId,
		TableNumber: pt.TableNumber,
		Lines:       make([]entity.OrderLine, 0, len(pt.Lines)),
		Total:       pt.Total,
	}
	for _, l := range pt.Lines {
		if l == nil {
			continue
		}
		p := mapRPCProductToEntity(l.GetProduct())
		tab.Lines = append(tab.Lines, entity.OrderLine{
			ID:        l.Id,
			TableID:   l.TableId,
			ProductID: p.ID,
			Product:   p,
			Quantity:  int(l.Quantity),
			LineTotal: l.LineTotal,
		})
	}
	return tab
}

func mapRPCProductToEntity(p *orderrpc.Product) entity.Product {
	return entity.Product{ID: p.Id, Name: p.Name, UnitPrice: p.UnitPrice}
}
