// Package middlewares contiene los decoradores http.Handler de la API: request
// id, logging, recover, CORS, headers de seguridad, métricas, rate limit y los
// gates de autenticación, rol y tenant.
package middlewares

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain envuelve h; el primer middleware queda más afuera.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := range mws {
		h = mws[len(mws)-1-i](h)
	}
	return h
}
