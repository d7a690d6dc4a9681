// Package health expone /healthz y /readyz.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// Check verifica una dependencia.
type Check func(ctx context.Context) error

type Controller struct {
	version string
	timeout time.Duration
	checks  map[string]Check
}

// NewController recibe los checks de readiness por nombre ("store", "redis").
func NewController(version string, checks map[string]Check) *Controller {
	return &Controller{version: version, timeout: 2 * time.Second, checks: checks}
}

// Healthz solo indica que el proceso responde.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, "ok", map[string]string{"version": c.version})
}

// Readyz corre todos los checks en paralelo. Si alguno falla responde 503
// con el estado de cada uno.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		status = make(map[string]string, len(c.checks))
	)
	g, gctx := errgroup.WithContext(ctx)
	for name, check := range c.checks {
		name, check := name, check
		g.Go(func() error {
			err := check(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				status[name] = err.Error()
				return err
			}
			status[name] = "ok"
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.From(r.Context()).Warn("readiness check failed",
			logger.Layer("controller"), logger.Component("health"), logger.Err(err))
		httperrors.WriteError(w, r, httperrors.ErrServiceUnavailable.WithDetail(err.Error()))
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "ready", status)
}
