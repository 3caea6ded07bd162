package catalog

import (
	"context"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

// UseCase serves product reads cache-aside: remote when reachable, the
// offline cache otherwise. Only a successful unfiltered fetch replaces the
// cache; filtered reads never touch the write path.
type UseCase interface {
	Products(ctx context.Context, filters *model.ProductFilters) ([]model.Product, error)

	// ShouldRefresh reports whether the cached catalog is older than the
	// configured maximum age.
	ShouldRefresh(ctx context.Context) (bool, error)
}
