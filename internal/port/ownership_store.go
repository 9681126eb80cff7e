package port

import (
	"context"

	"github.com/minimart/backend/internal/core/domain"
)

type OwnershipStore interface {
	// CreateUser persists a new user and returns its id.
	// Fails with domain.ErrUserExists when the username is taken.
	CreateUser(ctx context.Context, user domain.User) (int64, error)

	// FindUserByUsername returns nil, nil when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByID returns nil, nil when no such user exists.
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)

	// ListOwnershipRecords returns the user's cart rows in insertion order.
	ListOwnershipRecords(ctx context.Context, userID int64) ([]domain.OwnershipRecord, error)

	// AddOwnershipRecord appends a cart row and returns its id.
	AddOwnershipRecord(ctx context.Context, rec domain.OwnershipRecord) (int64, error)

	// RemoveOwnershipRecord deletes the user's cart row, returning whether a
	// row matched.
	RemoveOwnershipRecord(ctx context.Context, userID, recordID int64) (bool, error)
}
