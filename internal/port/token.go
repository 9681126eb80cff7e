package port

import (
	"context"

	"github.com/minimart/backend/internal/core/domain"
)

type TokenIssuer interface {
	// Issue produces a signed bearer token for the identity.
	Issue(identity domain.Identity) (string, error)
}

type TokenVerifier interface {
	// Verify validates an opaque bearer credential and yields the caller
	// identity. Fails with domain.ErrUnauthorized for anything invalid.
	Verify(ctx context.Context, token string) (domain.Identity, error)
}
