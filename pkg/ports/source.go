package ports

import (
	"context"

	"github.com/aretw0/penrose/pkg/domain"
)

// TilingSource resolves named tilings.
type TilingSource interface {
	// Get returns the tiling called name. Returns domain.ErrTilingNotFound if absent.
	Get(ctx context.Context, name string) (domain.Tiling, error)

	// List returns the names of every available tiling.
	List(ctx context.Context) ([]string, error)
}
