package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core))

	Log(ctx, AccountCreated, Actor("sa-1"), logger.AccountID("acc-1"))

	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "audit", e.LoggerName)
	m := e.ContextMap()
	assert.Equal(t, "account.created", m["event"])
	assert.Equal(t, "sa-1", m["actor"])
	assert.Equal(t, "acc-1", m["account_id"])
	assert.Contains(t, m, "at")
}
