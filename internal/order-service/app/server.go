package app

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/venue-tabs/internal/order-service/adapters/grpc/mappers"
	"github.com/jcmexdev/venue-tabs/internal/order-service/domain"
	"github.com/jcmexdev/venue-tabs/internal/orderrpc"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors/constants"
)

type orderServer struct {
	orderrpc.UnimplementedOrderServer
	store *domain.Store
}

func NewOrderServer(store *domain.Store) orderrpc.OrderServer {
	return &orderServer{store: store}
}

func (s *orderServer) ListTables(ctx context.Context, _ *orderrpc.ListTablesRequest) (*orderrpc.ListTablesResponse, error) {
	return &orderrpc.ListTablesResponse{Tables: mappers.TablesToRPC(s.store.Tables())}, nil
}

func (s *orderServer) GetTab(ctx context.Context, req *orderrpc.GetTabRequest) (*orderrpc.GetTabResponse, error) {
	tab, err := s.store.Tab(req.TableId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &orderrpc.GetTabResponse{Tab: mappers.TabToRPC(tab)}, nil
}

func (s *orderServer) ListProducts(ctx context.Context, _ *orderrpc.ListProductsRequest) (*orderrpc.ListProductsResponse, error) {
	return &orderrpc.ListProductsResponse{Products: mappers.ProductsToRPC(s.store.Products())}, nil
}

func (s *orderServer) IncreaseLineQuantity(ctx context.Context, req *orderrpc.IncreaseLineQuantityRequest) (*orderrpc.Ack, error) {
	if err := s.store.IncreaseLineQuantity(req.TableId, req.ProductId, int(req.Delta)); err != nil {
		return nil, toStatus(err)
	}
	logMutation(ctx, "line quantity increased", "table_id", req.TableId, "product_id", req.ProductId, "delta", req.Delta)
	return &orderrpc.Ack{}, nil
}

func (s *orderServer) SetLineQuantity(ctx context.Context, req *orderrpc.SetLineQuantityRequest) (*orderrpc.Ack, error) {
	if err := s.store.SetLineQuantity(req.LineId, int(req.Quantity)); err != nil {
		return nil, toStatus(err)
	}
	logMutation(ctx, "line quantity set", "line_id", req.LineId, "quantity", req.Quantity)
	return &orderrpc.Ack{}, nil
}

func (s *orderServer) DeleteTableLines(ctx context.Context, req *orderrpc.DeleteTableLinesRequest) (*orderrpc.Ack, error) {
	if err := s.store.DeleteTableLines(req.TableId); err != nil {
		return nil, toStatus(err)
	}
	logMutation(ctx, "table closed", "table_id", req.TableId)
	return &orderrpc.Ack{}, nil
}

func (s *orderServer) ListReportRecords(ctx context.Context, _ *orderrpc.ListReportRecordsRequest) (*orderrpc.ListReportRecordsResponse, error) {
	return &orderrpc.ListReportRecordsResponse{Records: mappers.ReportToRPC(s.store.Report())}, nil
}

func (s *orderServer) GetTotalRevenue(ctx context.Context, _ *orderrpc.GetTotalRevenueRequest) (*orderrpc.GetTotalRevenueResponse, error) {
	return &orderrpc.GetTotalRevenueResponse{Total: s.store.TotalRevenue()}, nil
}

func logMutation(ctx context.Context, msg string, args ...any) {
	args = append(args,
		"request_id", interceptors.GetMetadataValue(ctx, constants.HeaderXRequestId),
		"idempotency_key", interceptors.GetMetadataValue(ctx, constants.HeaderXIdempotencyKey),
	)
	slog.InfoContext(ctx, msg, args...)
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
