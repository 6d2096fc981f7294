package constants

// ContextKey is the type of the context keys in this package.
type ContextKey string

const (
	HeaderXRequestId      = "x-request-id"
	HeaderXIdempotencyKey = "x-idempotency-key"

	ContextKeyRequestID      ContextKey = HeaderXRequestId
	ContextKeyIdempotencyKey ContextKey = HeaderXIdempotencyKey
)
