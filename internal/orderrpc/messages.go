// Package orderrpc is the gRPC contract between the gateway and the Order
// Service. Messages travel as JSON through the codec registered in codec.go.
package orderrpc

import "github.com/shopspring/decimal"

type Table struct {
	Id         string          `json:"id"`
	Number     string          `json:"number,omitempty"`
	OpenAmount decimal.Decimal `json:"open_amount"`
}

type Product struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderLine struct {
	Id        string          `json:"id"`
	TableId   string          `json:"table_id"`
	Product   *Product        `json:"product"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func (l *OrderLine) GetProduct() *Product {
	if l == nil || l.Product == nil {
		return &Product{}
	}
	return l.Product
}

type Tab struct {
	TableId     string          `json:"table_id"`
	TableNumber string          `json:"table_number"`
	Lines       []*OrderLine    `json:"lines"`
	Total       decimal.Decimal `json:"total"`
}

type ReportRecord struct {
	Id        string          `json:"id"`
	Product   *Product        `json:"product"`
	UnitsSold int32           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (r *ReportRecord) GetProduct() *Product {
	if r == nil || r.Product == nil {
		return &Product{}
	}
	return r.Product
}

type ListTablesRequest struct{}

type ListTablesResponse struct {
	Tables []*Table `json:"tables"`
}

type GetTabRequest struct {
	TableId string `json:"table_id"`
}

type GetTabResponse struct {
	Tab *Tab `json:"tab"`
}

func (r *GetTabResponse) GetTab() *Tab {
	if r == nil {
		return nil
	}
	return r.Tab
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type IncreaseLineQuantityRequest struct {
	TableId   string `json:"table_id"`
	ProductId string `json:"product_id"`
	Delta     int32  `json:"delta"`
}

type SetLineQuantityRequest struct {
	LineId   string `json:"line_id"`
	Quantity int32  `json:"quantity"`
}

type DeleteTableLinesRequest struct {
	TableId string `json:"table_id"`
}

// Ack is the response of every mutation.
type Ack struct{}

type ListReportRecordsRequest struct{}

type ListReportRecordsResponse struct {
	Records []*ReportRecord `json:"records"`
}

type GetTotalRevenueRequest struct{}

type GetTotalRevenueResponse struct {
	Total decimal.Decimal `json:"total"`
}
