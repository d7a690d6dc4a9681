package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/metrics"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

const tenantLookupTimeout = 5 * time.Second

// AccountGetter es la parte de AccountRepository que usa el resolver.
type AccountGetter interface {
	GetByUserID(ctx context.Context, userID string) (*repository.Account, error)
}

// TenantResolver resuelve el Account del Principal. Las búsquedas se cachean
// por user_id con TTL corto; lookups concurrentes del mismo usuario comparten
// una sola query.
type TenantResolver struct {
	accounts AccountGetter
	cache    *gocache.Cache
	group    singleflight.Group
}

func NewTenantResolver(accounts AccountGetter, ttl time.Duration) *TenantResolver {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &TenantResolver{accounts: accounts, cache: gocache.New(ttl, 2*ttl)}
}

// Evict descarta el tenant cacheado de un usuario. Se llama al actualizar o
// borrar su Account.
func (t *TenantResolver) Evict(userID string) {
	t.cache.Delete(userID)
}

// Resolve retorna el Account del usuario (ErrNotFound si no tiene).
func (t *TenantResolver) Resolve(ctx context.Context, userID string) (*repository.Account, error) {
	if v, ok := t.cache.Get(userID); ok {
		metrics.TenantLookups.WithLabelValues("hit").Inc()
		return v.(*repository.Account), nil
	}
	v, err, _ := t.group.Do(userID, func() (any, error) {
		// la query es compartida: no depende de la cancelación del primer caller
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tenantLookupTimeout)
		defer cancel()
		a, err := t.accounts.GetByUserID(lctx, userID)
		if err != nil {
			return nil, err
		}
		t.cache.SetDefault(userID, a)
		return a, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.TenantLookups.WithLabelValues("not_found").Inc()
		} else {
			metrics.TenantLookups.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.TenantLookups.WithLabelValues("miss").Inc()
	return v.(*repository.Account), nil
}

// RequireTenant adjunta el Account del Principal al contexto. Sin Account →
// 404 ACCOUNT_NOT_FOUND. Va después de RequireAuth.
func (t *TenantResolver) RequireTenant() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p := GetPrincipal(ctx)
			if p == nil {
				httperrors.WriteError(w, r, httperrors.ErrUnauthorized)
				return
			}

			acc, err := t.Resolve(ctx, p.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					httperrors.WriteError(w, r, httperrors.ErrAccountNotFound)
					return
				}
				httperrors.WriteError(w, r, err)
				return
			}

			ctx = WithAccount(ctx, acc)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.AccountID(acc.ID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
