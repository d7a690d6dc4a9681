package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

func TestInTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx repository.Repositories) error {
		_, err := tx.Branches().Create(ctx, repository.Branch{AccountID: "acc-1", Name: "Centro", SpocEmail: "a@x.io"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Branches().List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInTx_CommitPublishes(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.InTx(ctx, func(tx repository.Repositories) error {
		_, err := tx.Branches().Create(ctx, repository.Branch{AccountID: "acc-1", Name: "Centro", SpocEmail: "a@x.io"})
		return err
	})
	require.NoError(t, err)

	list, err := s.Branches().List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTenantScopedReads(t *testing.T) {
	ctx := context.Background()
	s := New()

	b, err := s.Branches().Create(ctx, repository.Branch{AccountID: "acc-1", Name: "Centro", SpocEmail: "A@X.io"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", b.SpocEmail)

	_, err = s.Branches().GetByID(ctx, "acc-2", b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Branches().Delete(ctx, "acc-2", b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Misma spoc_email en otro tenant está permitida.
	_, err = s.Branches().Create(ctx, repository.Branch{AccountID: "acc-2", Name: "Norte", SpocEmail: "a@x.io"})
	require.NoError(t, err)

	_, err = s.Branches().Create(ctx, repository.Branch{AccountID: "acc-1", Name: "Sur", SpocEmail: "a@x.io"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestListOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.Plans().Create(ctx, repository.MembershipPlan{AccountID: "acc", PlanName: "Basic"})
	require.NoError(t, err)
	second, err := s.Plans().Create(ctx, repository.MembershipPlan{AccountID: "acc", PlanName: "Gold"})
	require.NoError(t, err)

	list, err := s.Plans().List(ctx, "acc")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestAssignments_SingleActivePerMember(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Assignments().Create(ctx, repository.Assignment{AccountID: "acc", MemberID: "m1", TrainerID: "t1", Status: repository.AssignmentActive})
	require.NoError(t, err)

	_, err = s.Assignments().Create(ctx, repository.Assignment{AccountID: "acc", MemberID: "m1", TrainerID: "t2", Status: repository.AssignmentActive})
	assert.ErrorIs(t, err, repository.ErrConflict)

	at := time.Now().UTC()
	n, err := s.Assignments().CloseActive(ctx, "acc", "m1", repository.AssignmentInactive, at)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cur, err := s.Assignments().CurrentForMember(ctx, "acc", "m1")
	require.NoError(t, err)
	assert.Equal(t, repository.AssignmentInactive, cur.Status)
	require.NotNil(t, cur.EndDate)
	assert.True(t, cur.EndDate.Equal(at))
}

func TestTokens_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	require.NoError(t, s.Tokens().Create(ctx, repository.AuthToken{
		UserID: "u1", Kind: repository.TokenResetPassword, TokenHash: "h1", ExpiresAt: now.Add(time.Minute),
	}))

	_, err := s.Tokens().Consume(ctx, repository.TokenRefresh, "h1", now)
	assert.ErrorIs(t, err, repository.ErrNotFound, "kind distinto")

	tok, err := s.Tokens().Consume(ctx, repository.TokenResetPassword, "h1", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", tok.UserID)

	_, err = s.Tokens().Consume(ctx, repository.TokenResetPassword, "h1", now)
	assert.ErrorIs(t, err, repository.ErrNotFound, "ya usado")
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Users().Create(ctx, repository.User{Name: "Ana", Email: "Ana@Gym.io", Role: repository.RoleAccountUser})
	require.NoError(t, err)

	_, err = s.Users().Create(ctx, repository.User{Name: "Otra", Email: "ana@gym.io", Role: repository.RoleAccountUser})
	assert.ErrorIs(t, err, repository.ErrConflict)

	u, err := s.Users().GetByEmail(ctx, "ANA@gym.io")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestInTx_RollbackRestoresNestedFields(t *testing.T) {
	ctx := context.Background()
	s := New()

	h, err := s.HealthReports().Create(ctx, repository.HealthReport{
		AccountID: "acc", MemberID: "m-1", Gender: repository.GenderMale,
		MaleParameters: &repository.MaleParameters{Chest: ptr(100.0)},
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.InTx(ctx, func(tx repository.Repositories) error {
		r, err := tx.HealthReports().GetByID(ctx, "acc", h.ID)
		require.NoError(t, err)
		*r.MaleParameters.Chest = 50
		_, err = tx.HealthReports().Update(ctx, "acc", *r)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.HealthReports().GetByID(ctx, "acc", h.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *got.MaleParameters.Chest)
}

func TestReadsDoNotAliasStoredRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := repository.HealthReport{AccountID: "acc", MemberID: "m-1", Gender: repository.GenderMale,
		MaleParameters: &repository.MaleParameters{Chest: ptr(100.0)}}
	h, err := s.HealthReports().Create(ctx, in)
	require.NoError(t, err)
	*in.MaleParameters.Chest = 1

	r, err := s.HealthReports().GetByID(ctx, "acc", h.ID)
	require.NoError(t, err)
	r.MaleParameters.Waist = ptr(80.0)

	list, err := s.HealthReports().ListByMember(ctx, "acc", "m-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].MaleParameters.Waist)
	assert.Equal(t, 100.0, *list[0].MaleParameters.Chest)

	tr, err := s.Trainers().Create(ctx, repository.Trainer{AccountID: "acc", Name: "Ana", Specialization: []string{"yoga"}})
	require.NoError(t, err)
	got, err := s.Trainers().GetByID(ctx, "acc", tr.ID)
	require.NoError(t, err)
	got.Specialization[0] = "box"
	again, err := s.Trainers().GetByID(ctx, "acc", tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"yoga"}, again.Specialization)
}
