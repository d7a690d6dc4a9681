package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/config"
	"github.com/dropDatabas3/gymcore/internal/email"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Uploads.Dir = t.TempDir()
	cfg.Rate.Enabled = true
	return cfg
}

func TestBuild_Memory(t *testing.T) {
	cfg := testConfig(t)
	a, err := Build(context.Background(), cfg, Options{Version: "test", Registerer: prometheus.NewRegistry(), Mail: &email.Recorder{}})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "memory", a.Store.Driver())
	assert.Equal(t, ":8080", a.Server.Addr)

	for path, want := range map[string]int{
		"/healthz":     http.StatusOK,
		"/readyz":      http.StatusOK,
		"/metrics":     http.StatusOK,
		"/v1/branches": http.StatusUnauthorized,
		"/nope":        http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestBuild_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Uploads.Driver = "ftp"
	_, err := Build(context.Background(), cfg, Options{Registerer: prometheus.NewRegistry()})
	assert.ErrorContains(t, err, "unknown driver")

	cfg = testConfig(t)
	cfg.JWT.KeyFile = t.TempDir() + "/missing.pem"
	_, err = Build(context.Background(), cfg, Options{Registerer: prometheus.NewRegistry()})
	assert.Error(t, err)
}

func TestMigrate_MemoryHasNone(t *testing.T) {
	cfg := testConfig(t)
	st, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer st.Close()
	_, err = Migrate(context.Background(), st, true, 0)
	assert.True(t, err != nil && strings.Contains(err.Error(), "no migrations"))
}

func TestPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.PasswordPolicy.RequireSymbol = true
	p := Policy(cfg)
	assert.Equal(t, 8, p.MinLength)
	assert.NotEmpty(t, p.Validate("password1"))
	assert.Empty(t, p.Validate("password1!"))
}
