package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/port"
)

type ctxKey int

const identityKey ctxKey = iota

// RequireAuth verifies the bearer credential once at the edge and stores the
// resulting identity in the request context. Handlers past it never see raw
// tokens.
func RequireAuth(verifier port.TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			tokenString := bearerToken(r)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			identity, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				log.Debug("token rejected",
					zap.String("request_id", requestID),
					zap.Error(err))
				writeError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the verified identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}
