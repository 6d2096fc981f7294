package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata puts the chi request id and the caller's idempotency
// key on the request context, where the Order Service adapters pick them up.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(constants.HeaderXIdempotencyKey)

		w.Header().Set(constants.HeaderXRequestId, requestID)
		ctx := interceptors.WithRequestID(r.Context(), requestID, idempotencyKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
