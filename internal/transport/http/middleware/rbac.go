package middleware

import (
	"net/http"
	"strings"

	"github.com/baechuer/eventflow/internal/domain"
)

// RequireRole allows the request through only when the authenticated role
// is one of the given roles. Assumes Auth() has already run.
func RequireRole(writeErr WriteErrFunc, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				// Middleware ordering issue (Auth not applied) or context missing
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			if !domain.IsValidRole(role) {
				writeErr(w, r, domain.ErrForbidden())
				return
			}

			if _, ok := allowed[role]; !ok {
				writeErr(w, r, domain.ErrInsufficientRole(strings.Join(roles, "|")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
