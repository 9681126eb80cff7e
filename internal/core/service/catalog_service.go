package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/port"
)

var (
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrMissingName  = errors.New("product name is required")
)

// CatalogService wraps the catalog store with the single write-authorization
// rule: only admins mutate the catalog. Reads require any authenticated
// identity.
type CatalogService struct {
	store port.CatalogStore
	log   *zap.Logger
}

func NewCatalogService(store port.CatalogStore, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// AuthorizeWrite is the one predicate gating catalog mutation. There is no
// per-operation variation: create, update and delete all require admin.
func (s *CatalogService) AuthorizeWrite(identity domain.Identity) error {
	if identity.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	if identity.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context, identity domain.Identity) ([]domain.CatalogEntry, error) {
	if identity.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return entries, nil
}

func (s *CatalogService) Create(ctx context.Context, identity domain.Identity, entry domain.CatalogEntry) (domain.CatalogEntry, error) {
	if err := s.AuthorizeWrite(identity); err != nil {
		return domain.CatalogEntry{}, err
	}
	if strings.TrimSpace(entry.Name) == "" {
		return domain.CatalogEntry{}, ErrMissingName
	}
	if entry.Price < 0 {
		return domain.CatalogEntry{}, ErrInvalidPrice
	}

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		return domain.CatalogEntry{}, fmt.Errorf("insert product: %w", err)
	}

	entry.ID = id
	s.log.Info("product created",
		zap.String("product_id", id),
		zap.String("by", identity.Username))
	return entry, nil
}

func (s *CatalogService) Update(ctx context.Context, identity domain.Identity, id string, patch domain.CatalogPatch) (domain.CatalogEntry, error) {
	if err := s.AuthorizeWrite(identity); err != nil {
		return domain.CatalogEntry{}, err
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domain.CatalogEntry{}, ErrInvalidPrice
	}

	matched, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return domain.CatalogEntry{}, fmt.Errorf("update product: %w", err)
	}
	if !matched {
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	}

	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.CatalogEntry{}, fmt.Errorf("reload product: %w", err)
	}
	if updated == nil {
		// Deleted between the update and the reload.
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	}

	return *updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.AuthorizeWrite(identity); err != nil {
		return err
	}

	matched, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !matched {
		return domain.ErrProductNotFound
	}

	s.log.Info("product deleted",
		zap.String("product_id", id),
		zap.String("by", identity.Username))
	return nil
}
