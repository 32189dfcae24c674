package authorization

import (
	"context"
	"net/http"

	"booking_service/domain"
	"booking_service/errors"
)

type identityKey struct{}

// Authenticate guards a subrouter. A missing token answers 401 before any
// handler runs, an invalid or expired one the same, a valid one puts the
// embedded identity into the request context.
func Authenticate(key []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
			tokenString := ExtractBearerToken(h.Header.Get("Authorization"))
			if tokenString == "" {
				http.Error(rw, errors.MissingTokenError, http.StatusUnauthorized)
				return
			}

			claims, err := ValidateToken(tokenString, key)
			if err != nil {
				http.Error(rw, errors.InvalidTokenError, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(h.Context(), identityKey{}, claims)
			next.ServeHTTP(rw, h.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated caller placed there by
// Authenticate, or nil on public routes.
func IdentityFromContext(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(identityKey{}).(*domain.Claims)
	return claims
}
