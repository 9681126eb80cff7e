package port

import (
	"context"

	"github.com/minimart/backend/internal/core/domain"
)

type CatalogStore interface {
	// Get returns nil, nil when no entry exists for the id. A malformed id
	// counts as absent, not as an error.
	Get(ctx context.Context, id string) (*domain.CatalogEntry, error)

	// List returns all catalog entries.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// Insert stores a new entry and returns the store-generated id.
	Insert(ctx context.Context, entry domain.CatalogEntry) (string, error)

	// Update applies a partial update, returning whether an entry matched.
	Update(ctx context.Context, id string, patch domain.CatalogPatch) (bool, error)

	// Delete removes an entry, returning whether one matched.
	Delete(ctx context.Context, id string) (bool, error)
}
