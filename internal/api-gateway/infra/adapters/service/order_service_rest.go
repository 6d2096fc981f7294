package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors/constants"
)

// StatusError is returned for a non-2xx answer of the REST Order Service.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RESTOrderService talks to the Order Service JSON API.
type RESTOrderService struct {
	baseURL string
	client  *http.Client
}

var _ ports.OrderService = (*RESTOrderService)(nil)

// NewRESTOrderService returns a client for the API rooted at baseURL. A nil
// client is replaced with a traced one.
func NewRESTOrderService(baseURL string, client *http.Client) ports.OrderService {
	if client == nil {
		client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		}
	}
	return &RESTOrderService{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// flexString accepts a JSON string or number. The service is not consistent
// about the type of ids and table numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

type masaDTO struct {
	MasaID    flexString      `json:"masaId"`
	MasaNo    flexString      `json:"masaNo"`
	MasaTutar decimal.Decimal `json:"masaTutar"`
}

type urunDTO struct {
	UrunID     flexString      `json:"urunId"`
	UrunAdi    string          `json:"urunAdi"`
	UrunFiyati decimal.Decimal `json:"urunFiyati"`
}

type siparisDTO struct {
	SiparisID   flexString      `json:"siparisId"`
	MasaID      flexString      `json:"masaId"`
	Urun        *urunDTO        `json:"urun"`
	Adet        int             `json:"adet"`
	ToplamTutar decimal.Decimal `json:"toplamTutar"`
}

type adisyonDTO struct {
	MasaID      flexString      `json:"masaId"`
	MasaNo      flexString      `json:"masaNo"`
	Siparisler  []siparisDTO    `json:"siparisler"`
	ToplamTutar decimal.Decimal `json:"toplamTutar"`
}

type raporDTO struct {
	RaporID     flexString      `json:"raporId"`
	Urun        *urunDTO        `json:"urun"`
	SatisAdedi  int             `json:"satisAdedi"`
	ToplamTutar decimal.Decimal `json:"toplamTutar"`
}

func (u *urunDTO) toEntity() entity.Product {
	if u == nil {
		return entity.Product{}
	}
	return entity.Product{ID: string(u.UrunID), Name: u.UrunAdi, UnitPrice: u.UrunFiyati}
}

func (s *RESTOrderService) ListTables(ctx context.Context) ([]entity.Table, error) {
	var body []masaDTO
	if err := s.do(ctx, http.MethodGet, "/api/masalar", nil, false, &body); err != nil {
		return nil, fmt.Errorf("rest ListTables: %w", err)
	}
	out := make([]entity.Table, len(body))
	for i, m := range body {
		out[i] = entity.Table{ID: string(m.MasaID), Number: string(m.MasaNo), OpenAmount: m.MasaTutar}
	}
	return out, nil
}

func (s *RESTOrderService) GetTab(ctx context.Context, tableID string) (*entity.Tab, error) {
	var body *adisyonDTO
	path := "/api/masalar/" + url.PathEscape(tableID) + "/adisyon"
	if err := s.do(ctx, http.MethodGet, path, nil, false, &body); err != nil {
		return nil, fmt.Errorf("rest GetTab: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("rest GetTab: empty tab in response")
	}

	tab := &entity.Tab{
		TableID:     string(body.MasaID),
		TableNumber: string(body.MasaNo),
		Lines:       make([]entity.OrderLine, len(body.Siparisler)),
		Total:       body.ToplamTutar,
	}
	for i, sp := range body.Siparisler {
		p := sp.Urun.toEntity()
		tab.Lines[i] = entity.OrderLine{
			ID:        string(sp.SiparisID),
			TableID:   string(sp.MasaID),
			ProductID: p.ID,
			Product:   p,
			Quantity:  sp.Adet,
			LineTotal: sp.ToplamTutar,
		}
	}
	return tab, nil
}

func (s *RESTOrderService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var body []urunDTO
	if err := s.do(ctx, http.MethodGet, "/api/urunler", nil, false, &body); err != nil {
		return nil, fmt.Errorf("rest ListProducts: %w", err)
	}
	out := make([]entity.Product, len(body))
	for i := range body {
		out[i] = body[i].toEntity()
	}
	return out, nil
}

func (s *RESTOrderService) IncreaseLineQuantity(ctx context.Context, tableID, productID string, delta int) error {
	q := url.Values{}
	q.Set("masaId", tableID)
	q.Set("urunId", productID)
	q.Set("adet", strconv.Itoa(delta))
	if err := s.do(ctx, http.MethodPost, "/api/siparisler", q, true, nil); err != nil {
		return fmt.Errorf("rest IncreaseLineQuantity: %w", err)
	}
	return nil
}

func (s *RESTOrderService) SetLineQuantity(ctx context.Context, lineID string, quantity int) error {
	q := url.Values{}
	q.Set("yeniAdet", strconv.Itoa(quantity))
	path := "/api/siparisler/" + url.PathEscape(lineID) + "/adet"
	if err := s.do(ctx, http.MethodPut, path, q, true, nil); err != nil {
		return fmt.Errorf("rest SetLineQuantity: %w", err)
	}
	return nil
}

func (s *RESTOrderService) DeleteTableLines(ctx context.Context, tableID string) error {
	path := "/api/siparisler/masa/" + url.PathEscape(tableID)
	if err := s.do(ctx, http.MethodDelete, path, nil, true, nil); err != nil {
		return fmt.Errorf("rest DeleteTableLines: %w", err)
	}
	return nil
}

func (s *RESTOrderService) ListReportRecords(ctx context.Context) ([]entity.ReportRecord, error) {
	var body []raporDTO
	if err := s.do(ctx, http.MethodGet, "/api/raporlar", nil, false, &body); err != nil {
		return nil, fmt.Errorf("rest ListReportRecords: %w", err)
	}
	out := make([]entity.ReportRecord, len(body))
	for i, r := range body {
		out[i] = entity.ReportRecord{
			ID:        string(r.RaporID),
			Product:   r.Urun.toEntity(),
			UnitsSold: r.SatisAdedi,
			Revenue:   r.ToplamTutar,
		}
	}
	return out, nil
}

func (s *RESTOrderService) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.do(ctx, http.MethodGet, "/api/raporlar/gunluk-ciro", nil, false, &total); err != nil {
		return decimal.Zero, fmt.Errorf("rest GetTotalRevenue: %w", err)
	}
	return total, nil
}

// do sends one request and decodes a JSON answer into out when out is not
// nil. Mutations carry a fresh idempotency key.
func (s *RESTOrderService) do(ctx context.Context, method, path string, query url.Values, mutation bool, out any) error {
	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if id := interceptors.GetMetadataValue(ctx, constants.HeaderXRequestId); id != "" {
		req.Header.Set(constants.HeaderXRequestId, id)
	}
	if mutation {
		req.Header.Set(constants.HeaderXIdempotencyKey, uuid.NewString())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
