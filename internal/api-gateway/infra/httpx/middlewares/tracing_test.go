package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors/constants"
)

func TestAttachTracingMetadata(t *testing.T) {
	var requestID, idempotencyKey string
	h := middleware.RequestID(AttachTracingMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = interceptors.GetMetadataValue(r.Context(), constants.HeaderXRequestId)
		idempotencyKey = interceptors.GetMetadataValue(r.Context(), constants.HeaderXIdempotencyKey)
	})))

	req := httptest.NewRequest(http.MethodPost, "/tables/1/tab/close", nil)
	req.Header.Set("X-Request-Id", "req-7")
	req.Header.Set(constants.HeaderXIdempotencyKey, "key-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-7", requestID)
	assert.Equal(t, "key-7", idempotencyKey)
	assert.Equal(t, "req-7", rec.Header().Get(constants.HeaderXRequestId))
}
