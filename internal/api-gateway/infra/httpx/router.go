package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/infra/httpx/middlewares"
)

// NewRouter mounts the UI routes. metrics may be nil.
func NewRouter(handler *Handler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Get("/tables", handler.ListTables)
	r.Route("/tables/{id}/tab", func(r chi.Router) {
		r.Get("/", handler.GetTab)
		r.Post("/items", handler.AddItem)
		r.Delete("/lines/{lineID}", handler.RemoveItem)
		r.Post("/close", handler.CloseTab)
	})
	r.Get("/tables/{id}/journal", handler.GetJournal)
	r.Get("/report", handler.GetReport)

	return otelhttp.NewHandler(r, "tab-gateway")
}
