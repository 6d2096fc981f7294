package orderrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "venue.order.v1.Order"

const (
	methodListTables           = "ListTables"
	methodGetTab               = "GetTab"
	methodListProducts         = "ListProducts"
	methodIncreaseLineQuantity = "IncreaseLineQuantity"
	methodSetLineQuantity      = "SetLineQuantity"
	methodDeleteTableLines     = "DeleteTableLines"
	methodListReportRecords    = "ListReportRecords"
	methodGetTotalRevenue      = "GetTotalRevenue"
)

// OrderClient is the client API for the Order service.
type OrderClient interface {
	ListTables(ctx context.Context, in *ListTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error)
	GetTab(ctx context.Context, in *GetTabRequest, opts ...grpc.CallOption) (*GetTabResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	IncreaseLineQuantity(ctx context.Context, in *IncreaseLineQuantityRequest, opts ...grpc.CallOption) (*Ack, error)
	SetLineQuantity(ctx context.Context, in *SetLineQuantityRequest, opts ...grpc.CallOption) (*Ack, error)
	DeleteTableLines(ctx context.Context, in *DeleteTableLinesRequest, opts ...grpc.CallOption) (*Ack, error)
	ListReportRecords(ctx context.Context, in *ListReportRecordsRequest, opts ...grpc.CallOption) (*ListReportRecordsResponse, error)
	GetTotalRevenue(ctx context.Context, in *GetTotalRevenueRequest, opts ...grpc.CallOption) (*GetTotalRevenueResponse, error)
}

type orderClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderClient(cc grpc.ClientConnInterface) OrderClient {
	return &orderClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) ListTables(ctx context.Context, in *ListTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error) {
	return invoke[ListTablesResponse](ctx, c.cc, methodListTables, in, opts)
}

func (c *orderClient) GetTab(ctx context.Context, in *GetTabRequest, opts ...grpc.CallOption) (*GetTabResponse, error) {
	return invoke[GetTabResponse](ctx, c.cc, methodGetTab, in, opts)
}

func (c *orderClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, methodListProducts, in, opts)
}

func (c *orderClient) IncreaseLineQuantity(ctx context.Context, in *IncreaseLineQuantityRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, methodIncreaseLineQuantity, in, opts)
}

func (c *orderClient) SetLineQuantity(ctx context.Context, in *SetLineQuantityRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, methodSetLineQuantity, in, opts)
}

func (c *orderClient) DeleteTableLines(ctx context.Context, in *DeleteTableLinesRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, methodDeleteTableLines, in, opts)
}

func (c *orderClient) ListReportRecords(ctx context.Context, in *ListReportRecordsRequest, opts ...grpc.CallOption) (*ListReportRecordsResponse, error) {
	return invoke[ListReportRecordsResponse](ctx, c.cc, methodListReportRecords, in, opts)
}

func (c *orderClient) GetTotalRevenue(ctx context.Context, in *GetTotalRevenueRequest, opts ...grpc.CallOption) (*GetTotalRevenueResponse, error) {
	return invoke[GetTotalRevenueResponse](ctx, c.cc, methodGetTotalRevenue, in, opts)
}

// OrderServer is the server API for the Order service.
type OrderServer interface {
	ListTables(context.Context, *ListTablesRequest) (*ListTablesResponse, error)
	GetTab(context.Context, *GetTabRequest) (*GetTabResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	IncreaseLineQuantity(context.Context, *IncreaseLineQuantityRequest) (*Ack, error)
	SetLineQuantity(context.Context, *SetLineQuantityRequest) (*Ack, error)
	DeleteTableLines(context.Context, *DeleteTableLinesRequest) (*Ack, error)
	ListReportRecords(context.Context, *ListReportRecordsRequest) (*ListReportRecordsResponse, error)
	GetTotalRevenue(context.Context, *GetTotalRevenueRequest) (*GetTotalRevenueResponse, error)
}

// UnimplementedOrderServer can be embedded to satisfy OrderServer.
type UnimplementedOrderServer struct{}

func (UnimplementedOrderServer) ListTables(context.Context, *ListTablesRequest) (*ListTablesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTables not implemented")
}
func (UnimplementedOrderServer) GetTab(context.Context, *GetTabRequest) (*GetTabResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTab not implemented")
}
func (UnimplementedOrderServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedOrderServer) IncreaseLineQuantity(context.Context, *IncreaseLineQuantityRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method IncreaseLineQuantity not implemented")
}
func (UnimplementedOrderServer) SetLineQuantity(context.Context, *SetLineQuantityRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method SetLineQuantity not implemented")
}
func (UnimplementedOrderServer) DeleteTableLines(context.Context, *DeleteTableLinesRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTableLines not implemented")
}
func (UnimplementedOrderServer) ListReportRecords(context.Context, *ListReportRecordsRequest) (*ListReportRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListReportRecords not implemented")
}
func (UnimplementedOrderServer) GetTotalRevenue(context.Context, *GetTotalRevenueRequest) (*GetTotalRevenueResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTotalRevenue not implemented")
}

func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&Order_ServiceDesc, srv)
}

func unary[Req any, Resp any](method string, call func(OrderServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(OrderServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(OrderServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var Order_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodListTables, OrderServer.ListTables),
		unary(methodGetTab, OrderServer.GetTab),
		unary(methodListProducts, OrderServer.ListProducts),
		unary(methodIncreaseLineQuantity, OrderServer.IncreaseLineQuantity),
		unary(methodSetLineQuantity, OrderServer.SetLineQuantity),
		unary(methodDeleteTableLines, OrderServer.DeleteTableLines),
		unary(methodListReportRecords, OrderServer.ListReportRecords),
		unary(methodGetTotalRevenue, OrderServer.GetTotalRevenue),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orderrpc",
}
