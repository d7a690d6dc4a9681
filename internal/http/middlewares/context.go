package middlewares

import (
	"context"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxAccountKey   ctxKey = "account"
	ctxRequestIDKey ctxKey = "request_id"
)

// Principal es el usuario autenticado del request.
type Principal struct {
	ID    string
	Role  repository.Role
	Email string
	Name  string
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// GetPrincipal retorna nil si RequireAuth no corrió.
func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxPrincipalKey).(*Principal)
	return p
}

func WithAccount(ctx context.Context, a *repository.Account) context.Context {
	return context.WithValue(ctx, ctxAccountKey, a)
}

// GetAccount retorna el tenant resuelto por RequireTenant (nil si no corrió).
func GetAccount(ctx context.Context) *repository.Account {
	a, _ := ctx.Value(ctxAccountKey).(*repository.Account)
	return a
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestIDKey).(string)
	return s
}
