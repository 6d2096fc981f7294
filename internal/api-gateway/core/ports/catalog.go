package ports

import (
	"context"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
)

// Catalog serves the product list shown next to a tab.
type Catalog interface {
	Products(ctx context.Context) ([]entity.Product, error)
}
