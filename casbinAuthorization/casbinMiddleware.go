package casbinAuthorization

import (
	"net/http"

	"booking_service/authorization"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"
)

const (
	roleUnauthenticated = "unauthenticated"
	roleUser            = "user"
)

func extractRole(r *http.Request, key []byte) string {
	tokenString := authorization.ExtractBearerToken(r.Header.Get("Authorization"))
	if tokenString == "" {
		return roleUnauthenticated
	}

	if _, err := authorization.ValidateToken(tokenString, key); err != nil {
		return roleUnauthenticated
	}

	return roleUser
}

// CasbinMiddleware enforces the route policy before any handler logic. An
// anonymous caller denied access gets 401, an authenticated one 403.
func CasbinMiddleware(e *casbin.Enforcer, key []byte, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			role := extractRole(r, key)

			res, err := e.EnforceSafe(role, r.URL.Path, r.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy: ", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !res {
				if role == roleUnauthenticated {
					logger.Warn("Unauthorized access attempt: ", r.Method, " ", r.URL.Path)
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				logger.Warn("Forbidden access attempt: ", r.Method, " ", r.URL.Path)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
