package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/digest"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/roster"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/tab"
	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

// RosterMetrics records the size of the normalized roster.
type RosterMetrics interface {
	SetRosterSize(n int)
}

// Handler serves the table roster, the tabs and the sales report to the UI.
type Handler struct {
	orderService ports.OrderService
	tabs         *tab.Manager
	metrics      RosterMetrics // nil-safe
	journal      tablog.Reader // nil: journal route answers 404
}

func NewHandler(os ports.OrderService, tabs *tab.Manager, metrics RosterMetrics) *Handler {
	return &Handler{orderService: os, tabs: tabs, metrics: metrics}
}

// WithJournal exposes the tab journal read from r.
func (h *Handler) WithJournal(r tablog.Reader) *Handler {
	h.journal = r
	return h
}

// ListTables returns the deduplicated, ordered roster.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.orderService.ListTables(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list tables failed", "error", err)
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}
	if err := roster.Validate(tables); err != nil {
		slog.ErrorContext(r.Context(), "roster rejected", "error", err)
		writeError(w, http.StatusBadGateway, "protocol_violation", err.Error())
		return
	}

	normalized := roster.Normalize(tables)
	if h.metrics != nil {
		h.metrics.SetRosterSize(len(normalized))
	}
	writeJSON(w, http.StatusOK, mapTables(normalized))
}

// GetTab (re)loads the tab of a table together with the product list.
func (h *Handler) GetTab(w http.ResponseWriter, r *http.Request) {
	st, err := h.tabs.Session(chi.URLParam(r, "id")).Load(r.Context())
	writeState(w, st, err)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	st, err := h.tabs.Session(chi.URLParam(r, "id")).AddItem(r.Context(), req.ProductID)
	writeState(w, st, err)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	st, err := h.tabs.Session(chi.URLParam(r, "id")).RemoveItem(r.Context(), chi.URLParam(r, "lineID"))
	writeState(w, st, err)
}

// CloseTab closes the tab. The close keeps running if the client goes away
// so the UI can navigate off right after confirming.
func (h *Handler) CloseTab(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	st, err := h.tabs.Session(chi.URLParam(r, "id")).Close(ctx)
	writeState(w, st, err)
}

// GetReport returns the per-product sales with the day's revenue.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	d, err := digest.Fetch(r.Context(), h.orderService)
	if err != nil {
		slog.ErrorContext(r.Context(), "report fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapReport(d))
}

// GetJournal lists the journaled mutations of a table.
func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeError(w, http.StatusNotFound, "journal_disabled", "")
		return
	}
	entries, err := h.journal.ListByTable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.ErrorContext(r.Context(), "journal read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "journal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapJournal(entries))
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeState answers with the session state. Caller mistakes get their own
// status; an Order Service failure is a 502 that still carries the state.
func writeState(w http.ResponseWriter, st tab.State, err error) {
	resp := mapState(st)
	switch {
	case errors.Is(err, tab.ErrLineNotFound):
		resp.Error = &ErrorResponse{Error: "line_not_found", Message: err.Error()}
		writeJSON(w, http.StatusNotFound, resp)
	case errors.Is(err, tab.ErrSessionClosed):
		resp.Error = &ErrorResponse{Error: "session_closed", Message: err.Error()}
		writeJSON(w, http.StatusConflict, resp)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, "cancelled", err.Error())
	case st.LastError != nil:
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
