package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/port"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrItemNotFound    = errors.New("cart item not found")
)

// CartService assembles a user's cart by joining ownership rows from the
// relational store with product documents from the catalog store.
type CartService struct {
	ownership port.OwnershipStore
	catalog   port.CatalogStore
	log       *zap.Logger

	maxConcurrent int
}

func NewCartService(ownership port.OwnershipStore, catalog port.CatalogStore, log *zap.Logger, maxConcurrent int) *CartService {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	return &CartService{
		ownership:     ownership,
		catalog:       catalog,
		log:           log,
		maxConcurrent: maxConcurrent,
	}
}

// GetCart resolves the identity to an ownership-domain user, lists its cart
// rows, and fans out catalog lookups per row. Rows whose product reference
// does not resolve are omitted from the result; output order follows the
// stored row order. Read-only with respect to both stores.
func (s *CartService) GetCart(ctx context.Context, identity domain.Identity) ([]domain.CartLine, error) {
	if identity.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.ownership.FindUserByUsername(ctx, identity.Username)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	records, err := s.ownership.ListOwnershipRecords(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart rows: %w", err)
	}

	// Index-addressed slice so concurrent lookups reassemble in row order.
	resolved := make([]*domain.CartLine, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range records {
		g.Go(func() error {
			rec := records[idx]

			entry, err := s.catalog.Get(gctx, rec.ProductRef)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Per-line catalog failures degrade the view instead of
				// failing the whole request.
				s.log.Debug("omitting cart line, catalog lookup failed",
					zap.String("product_ref", rec.ProductRef),
					zap.Error(err))
				return nil
			}
			if entry == nil {
				s.log.Debug("omitting cart line, product missing from catalog",
					zap.String("product_ref", rec.ProductRef))
				return nil
			}

			resolved[idx] = &domain.CartLine{
				ProductRef: rec.ProductRef,
				Quantity:   rec.Quantity,
				Product:    *entry,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(records))
	for _, line := range resolved {
		if line != nil {
			lines = append(lines, *line)
		}
	}

	return lines, nil
}

// AddItem appends an ownership row for the caller. The product reference is
// not checked against the catalog; cross-store integrity is advisory.
func (s *CartService) AddItem(ctx context.Context, identity domain.Identity, productRef string, quantity int) (domain.OwnershipRecord, error) {
	if identity.IsAnonymous() {
		return domain.OwnershipRecord{}, domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return domain.OwnershipRecord{}, ErrInvalidQuantity
	}

	user, err := s.ownership.FindUserByUsername(ctx, identity.Username)
	if err != nil {
		return domain.OwnershipRecord{}, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return domain.OwnershipRecord{}, domain.ErrUserNotFound
	}

	rec := domain.OwnershipRecord{
		UserID:     user.ID,
		ProductRef: productRef,
		Quantity:   quantity,
	}

	id, err := s.ownership.AddOwnershipRecord(ctx, rec)
	if err != nil {
		return domain.OwnershipRecord{}, fmt.Errorf("add cart row: %w", err)
	}

	rec.ID = id
	return rec, nil
}

// RemoveItem deletes one of the caller's ownership rows. Rows belonging to
// other users are indistinguishable from absent ones.
func (s *CartService) RemoveItem(ctx context.Context, identity domain.Identity, recordID int64) error {
	if identity.IsAnonymous() {
		return domain.ErrUnauthorized
	}

	user, err := s.ownership.FindUserByUsername(ctx, identity.Username)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	matched, err := s.ownership.RemoveOwnershipRecord(ctx, user.ID, recordID)
	if err != nil {
		return fmt.Errorf("remove cart row: %w", err)
	}
	if !matched {
		return ErrItemNotFound
	}

	return nil
}
