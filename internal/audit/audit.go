// Package audit registra eventos de negocio sensibles (altas/bajas de tenants,
// cobros) en un logger "audit" aparte, con actor y request id del contexto.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// Eventos conocidos.
const (
	AccountCreated        = "account.created"
	AccountUpdated        = "account.updated"
	AccountDeleted        = "account.deleted"
	SubscriptionCreated   = "subscription.created"
	SubscriptionCancelled = "subscription.cancelled"
)

// Actor es el principal que ejecuta la acción.
func Actor(id string) zap.Field { return zap.String("actor", id) }

// Log escribe el evento a nivel Info.
func Log(ctx context.Context, event string, fields ...zap.Field) {
	l := logger.From(ctx).Named("audit")
	fs := make([]zap.Field, 0, len(fields)+2)
	fs = append(fs, zap.String("event", event), zap.Time("at", time.Now().UTC()))
	fs = append(fs, fields...)
	l.Info("audit", fs...)
}
