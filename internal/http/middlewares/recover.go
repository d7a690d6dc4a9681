package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// WithRecover captura panics y devuelve un 500 con el envelope estándar.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.From(r.Context()).Error("panic recovered",
					logger.Layer("middleware"),
					logger.Op("recover"),
					logger.Any("panic", rec),
					logger.Stack(),
				)
				httperrors.WriteError(w, nil, httperrors.ErrInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
