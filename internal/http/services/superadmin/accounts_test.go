package superadmin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/superadmin"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/security/password"
	"github.com/dropDatabas3/gymcore/internal/store/memory"
)

type evictSpy struct{ evicted []string }

func (e *evictSpy) Evict(userID string) { e.evicted = append(e.evicted, userID) }

func newService(t *testing.T) (AccountService, *memory.Store, *evictSpy) {
	t.Helper()
	st := memory.New()
	spy := &evictSpy{}
	return NewAccountService(Deps{Store: st, Policy: password.DefaultPolicy, Hash: password.Fast, Tenants: spy}), st, spy
}

func TestAccounts_CreateAndScope(t *testing.T) {
	svc, st, spy := newService(t)
	ctx := context.Background()

	in := dto.AccountCreate{Name: "Owner", Email: "owner@gym.test", Password: "secret123", OwnerName: "Iron Gym"}
	a, err := svc.Create(ctx, "admin-1", in)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", a.SuperAdminID)
	assert.Equal(t, repository.RoleAccountUser, a.User.Role)

	got, err := st.Accounts().GetByUserID(ctx, a.User.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// email tomado: ni user ni account nuevos
	_, err = svc.Create(ctx, "admin-1", in)
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)

	list, err := svc.List(ctx, "admin-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = svc.List(ctx, "admin-2")
	require.NoError(t, err)
	assert.Empty(t, list)

	name := "Iron Gym Norte"
	_, err = svc.Update(ctx, "admin-2", a.ID, dto.AccountUpdate{OwnerName: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	up, err := svc.Update(ctx, "admin-1", a.ID, dto.AccountUpdate{OwnerName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, up.OwnerName)

	assert.ErrorIs(t, svc.Delete(ctx, "admin-2", a.ID), repository.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "admin-1", a.ID))
	assert.Equal(t, []string{a.User.ID, a.User.ID}, spy.evicted)

	// sin cascada: el user sigue existiendo
	_, err = st.Users().GetByID(ctx, a.User.ID)
	assert.NoError(t, err)
}

func TestAccounts_WeakPassword(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Create(context.Background(), "admin-1", dto.AccountCreate{Name: "O", Email: "o@gym.test", Password: "123", OwnerName: "O"})
	assert.ErrorIs(t, err, httperrors.ErrWeakPassword)
}

func TestAccounts_AuditTrail(t *testing.T) {
	svc, _, _ := newService(t)
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core))

	a, err := svc.Create(ctx, "admin-1", dto.AccountCreate{Name: "O", Email: "marge@gym.test", Password: "secret123", OwnerName: "O"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "admin-1", a.ID))

	audits := logs.FilterLoggerName("audit").All()
	require.Len(t, audits, 2)
	first := audits[0].ContextMap()
	assert.Equal(t, "account.created", first["event"])
	assert.Equal(t, "admin-1", first["actor"])
	assert.Equal(t, "m…@g….test", first["email"])
	assert.Equal(t, "account.deleted", audits[1].ContextMap()["event"])
}
