package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// UserGetter es la parte de UserRepository que usa el gate.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
}

// bearer extrae el token de "Authorization: Bearer <jwt>".
func bearer(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(ah[7:])
	return raw, raw != ""
}

// RequireAuth valida el access token (EdDSA, issuer, exp, typ=access) y carga
// el User del sub. Sin token, token inválido o usuario inexistente → 401.
// El Principal queda en el contexto y el logger del request suma user_id y role.
func RequireAuth(issuer *jwtx.Issuer, users UserGetter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.From(ctx).With(logger.Layer("middleware"), logger.Component("auth"))

			raw, ok := bearer(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				httperrors.WriteError(w, r, httperrors.ErrTokenMissing)
				return
			}

			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				log.Debug("access token rejected", logger.Err(err))
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, r, httperrors.ErrTokenInvalid)
				return
			}

			u, err := users.GetByID(ctx, claims.Subject)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					httperrors.WriteError(w, r, err)
					return
				}
				log.Debug("token subject not found", logger.UserID(claims.Subject))
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, r, httperrors.ErrUnauthorized)
				return
			}

			p := &Principal{ID: u.ID, Role: u.Role, Email: u.Email, Name: u.Name}
			ctx = WithPrincipal(ctx, p)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(u.ID), logger.Role(string(u.Role))))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
