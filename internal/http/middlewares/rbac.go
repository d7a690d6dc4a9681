package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
)

// RequireRole exige que el Principal tenga uno de los roles. Sin Principal
// (RequireAuth no corrió) responde 401.
func RequireRole(roles ...repository.Role) Middleware {
	allowed := make(map[repository.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := GetPrincipal(r.Context())
			if p == nil {
				httperrors.WriteError(w, r, httperrors.ErrUnauthorized)
				return
			}
			if _, ok := allowed[p.Role]; !ok {
				httperrors.WriteError(w, r, httperrors.ErrForbidden.WithDetail("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
