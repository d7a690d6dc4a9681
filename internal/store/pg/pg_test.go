package pg

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	migrations "github.com/dropDatabas3/gymcore/migrations/postgres"
)

func TestParseMigrations_Embedded(t *testing.T) {
	migs, err := ParseMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Contains(t, migs[0].Up, "CREATE TABLE IF NOT EXISTS health_reports")
	assert.Contains(t, migs[0].Up, "trainer_assignments_active_uq")
	assert.Contains(t, migs[0].Down, "DROP TABLE IF EXISTS users")
}

func TestParseMigrations_OrderAndPairs(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second_up.sql":   {Data: []byte("B")},
		"0001_first_up.sql":    {Data: []byte("A")},
		"0001_first_down.sql":  {Data: []byte("a")},
		"README.md":            {Data: []byte("ignored")},
		"0010_tenth_up.sql":    {Data: []byte("J")},
		"0010_tenth_down.sql":  {Data: []byte("j")},
		"bad_name_up.sql":      {Data: []byte("ignored")},
		"0003_third_sideways":  {Data: []byte("ignored")},
		"0002_second_down.sql": {Data: []byte("b")},
	}
	migs, err := ParseMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int{1, 2, 10}, []int{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "A", migs[0].Up)
	assert.Equal(t, "a", migs[0].Down)
	assert.Equal(t, "second", migs[1].Name)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), repository.ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "members_phone_uq"}
	err := mapErr(unique)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Contains(t, err.Error(), "members_phone_uq")

	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "22P02"}), repository.ErrInvalidInput)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "57P01"}), repository.ErrUnavailable)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

func TestWrapKeepsSentinel(t *testing.T) {
	assert.NoError(t, wrap("op", nil))
	err := wrap("get member", pgx.ErrNoRows)
	assert.True(t, repository.IsNotFound(err))
	assert.Contains(t, err.Error(), "pg: get member")
}

func TestScopedIDs(t *testing.T) {
	id := "4b6f1a64-3f1c-4f7a-9a55-1d0c2e6a8c11"
	assert.True(t, scopedIDs(id))
	assert.True(t, scopedIDs(id, id))
	assert.False(t, scopedIDs("not-a-uuid", id))
	assert.False(t, scopedIDs(id, "x"))
	assert.False(t, scopedIDs(""))
}
