package ports

import (
	"context"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks

// CatalogLoader reads the declarative record tables and layer roots.
type CatalogLoader interface {
	Load(ctx context.Context, url string) (*domain.Catalog, error)
}
