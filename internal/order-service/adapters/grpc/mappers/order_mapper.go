package mappers

import (
	"github.com/jcmexdev/venue-tabs/internal/order-service/domain"
	"github.com/jcmexdev/venue-tabs/internal/orderrpc"
)

func TablesToRPC(tables []domain.TableSummary) []*orderrpc.Table {
	out := make([]*orderrpc.Table, len(tables))
	for i, t := range tables {
		out[i] = &orderrpc.Table{Id: t.ID, Number: t.Number, OpenAmount: t.OpenAmount}
	}
	return out
}

func ProductToRPC(p domain.Product) *orderrpc.Product {
	return &orderrpc.Product{Id: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}
}

func ProductsToRPC(products []domain.Product) []*orderrpc.Product {
	out := make([]*orderrpc.Product, len(products))
	for i, p := range products {
		out[i] = ProductToRPC(p)
	}
	return out
}

func TabToRPC(t domain.Tab) *orderrpc.Tab {
	lines := make([]*orderrpc.OrderLine, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = &orderrpc.OrderLine{
			Id:        l.ID,
			TableId:   l.TableID,
			Product:   ProductToRPC(l.Product),
			Quantity:  int32(l.Quantity),
			LineTotal: l.LineTotal,
		}
	}
	return &orderrpc.Tab{
		TableId:     t.TableID,
		TableNumber: t.TableNumber,
		Lines:       lines,
		Total:       t.Total,
	}
}

func ReportToRPC(rows []domain.ReportRow) []*orderrpc.ReportRecord {
	out := make([]*orderrpc.ReportRecord, len(rows))
	for i, r := range rows {
		out[i] = &orderrpc.ReportRecord{
			Id:        r.ID,
			Product:   ProductToRPC(r.Product),
			UnitsSold: int32(r.UnitsSold),
			Revenue:   r.Revenue,
		}
	}
	return out
}
