package httpx

import (
	"encoding/json"
	"time"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/roster"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/tab"
	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type TableResponse struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	OpenAmount string `json:"open_amount"`
	Overflow   bool   `json:"overflow"`
}

type ProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

type LineResponse struct {
	ID        string          `json:"id"`
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"line_total"`
}

type TabResponse struct {
	TableID     string            `json:"table_id"`
	TableNumber string            `json:"table_number"`
	Status      string            `json:"status"`
	Lines       []LineResponse    `json:"lines"`
	Total       string            `json:"total"`
	Products    []ProductResponse `json:"products,omitempty"`
	Error       *ErrorResponse    `json:"error,omitempty"`
}

type ReportRecordResponse struct {
	ID        string          `json:"id"`
	Product   ProductResponse `json:"product"`
	UnitsSold int             `json:"units_sold"`
	Revenue   string          `json:"revenue"`
}

type ReportResponse struct {
	Records    []ReportRecordResponse `json:"records"`
	GrandTotal string                 `json:"grand_total"`
}

type JournalEntryResponse struct {
	Operation string          `json:"operation"`
	Status    string          `json:"status"`
	Step      string          `json:"step,omitempty"`
	Errors    json.RawMessage `json:"errors"`
	TraceID   string          `json:"trace_id,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapTables(tables []entity.Table) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i, t := range tables {
		out[i] = TableResponse{
			ID:         t.ID,
			Number:     t.Number,
			OpenAmount: t.OpenAmount.StringFixed(2),
			Overflow:   roster.IsOverflowTable(t.Number),
		}
	}
	return out
}

func mapProduct(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice.StringFixed(2)}
}

func mapState(st tab.State) TabResponse {
	resp := TabResponse{
		TableID:     st.TableID,
		TableNumber: st.Tab.TableNumber,
		Status:      st.Status.String(),
		Lines:       make([]LineResponse, len(st.Tab.Lines)),
		Total:       st.Tab.Total.StringFixed(2),
	}
	for i, l := range st.Tab.Lines {
		resp.Lines[i] = LineResponse{
			ID:        l.ID,
			Product:   mapProduct(l.Product),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.StringFixed(2),
		}
	}
	for _, p := range st.Products {
		resp.Products = append(resp.Products, mapProduct(p))
	}
	if st.LastError != nil {
		resp.Error = &ErrorResponse{Error: string(st.LastError.Kind), Message: st.LastError.Err.Error()}
	}
	return resp
}

func mapReport(d entity.RevenueDigest) ReportResponse {
	resp := ReportResponse{
		Records:    make([]ReportRecordResponse, len(d.Records)),
		GrandTotal: d.GrandTotal.StringFixed(2),
	}
	for i, r := range d.Records {
		resp.Records[i] = ReportRecordResponse{
			ID:        r.ID,
			Product:   mapProduct(r.Product),
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue.StringFixed(2),
		}
	}
	return resp
}

func mapJournal(entries []tablog.Entry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		errs := json.RawMessage(e.ErrorMessages)
		if !json.Valid(errs) {
			errs = json.RawMessage("[]")
		}
		out[i] = JournalEntryResponse{
			Operation: e.Operation,
			Status:    string(e.Status),
			Step:      e.CurrentStep,
			Errors:    errs,
			TraceID:   e.TraceID,
			UpdatedAt: e.UpdatedAt,
		}
	}
	return out
}
