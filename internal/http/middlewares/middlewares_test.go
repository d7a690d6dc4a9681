package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/rate"
	"github.com/dropDatabas3/gymcore/internal/store/memory"
)

type fixture struct {
	st     *memory.Store
	issuer *jwtx.Issuer
	admin  *repository.User
	owner  *repository.User
	orphan *repository.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	keys, err := jwtx.NewEd25519()
	require.NoError(t, err)

	mk := func(email string, role repository.Role) *repository.User {
		u, err := st.Users().Create(ctx, repository.User{Name: email, Email: email, PasswordHash: "x", Role: role})
		require.NoError(t, err)
		return u
	}
	f := &fixture{
		st:     st,
		issuer: jwtx.NewIssuer("http://gym.test", keys, 15*time.Minute),
		admin:  mk("root@gym.test", repository.RoleSuperAdmin),
		owner:  mk("owner@gym.test", repository.RoleAccountUser),
		orphan: mk("orphan@gym.test", repository.RoleAccountUser),
	}
	_, err = st.Accounts().Create(ctx, repository.Account{UserID: f.owner.ID, OwnerName: "Owner", SuperAdminID: f.admin.ID})
	require.NoError(t, err)
	return f
}

func (f *fixture) token(t *testing.T, u *repository.User) string {
	tok, _, err := f.issuer.IssueAccess(u.ID, string(u.Role), u.Email)
	require.NoError(t, err)
	return tok
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Errors []struct {
			Code string `json:"code"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Errors)
	return body.Errors[0].Code
}

func TestRequireAuth(t *testing.T) {
	f := newFixture(t)
	h := Chain(okHandler(), RequireAuth(f.issuer, f.st.Users()))

	other, err := jwtx.NewEd25519()
	require.NoError(t, err)
	foreign, _, err := jwtx.NewIssuer("http://gym.test", other, time.Minute).IssueAccess(f.owner.ID, "ACCOUNT_USER", "")
	require.NoError(t, err)
	ghost, _, err := f.issuer.IssueAccess("00000000-0000-0000-0000-000000000000", "ACCOUNT_USER", "")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing", "", 401, "TOKEN_MISSING"},
		{"not bearer", "Basic abc", 401, "TOKEN_MISSING"},
		{"garbage", "Bearer abc.def.ghi", 401, "TOKEN_INVALID"},
		{"foreign key", "Bearer " + foreign, 401, "TOKEN_INVALID"},
		{"unknown user", "Bearer " + ghost, 401, "UNAUTHORIZED"},
		{"ok", "Bearer " + f.token(t, f.owner), 204, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				assert.Equal(t, tc.code, errorCode(t, rec))
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	f := newFixture(t)
	h := Chain(okHandler(), RequireAuth(f.issuer, f.st.Users()), RequireRole(repository.RoleSuperAdmin))

	r := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	r.Header.Set("Authorization", "Bearer "+f.token(t, f.owner))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	r.Header.Set("Authorization", "Bearer "+f.token(t, f.admin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// sin principal
	rec = httptest.NewRecorder()
	RequireRole(repository.RoleSuperAdmin)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireTenant(t *testing.T) {
	f := newFixture(t)
	tr := NewTenantResolver(f.st.Accounts(), time.Minute)

	var got *repository.Account
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAccount(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Chain(inner, RequireAuth(f.issuer, f.st.Users()), tr.RequireTenant())

	r := httptest.NewRequest(http.MethodGet, "/v1/branches", nil)
	r.Header.Set("Authorization", "Bearer "+f.token(t, f.owner))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, f.owner.ID, got.UserID)

	r.Header.Set("Authorization", "Bearer "+f.token(t, f.orphan))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", errorCode(t, rec))
}

func TestTenantResolver_CacheAndEvict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := NewTenantResolver(f.st.Accounts(), time.Minute)

	a, err := tr.Resolve(ctx, f.owner.ID)
	require.NoError(t, err)
	require.NoError(t, f.st.Accounts().Delete(ctx, f.admin.ID, a.ID))

	// cacheado
	_, err = tr.Resolve(ctx, f.owner.ID)
	require.NoError(t, err)

	tr.Evict(f.owner.ID)
	_, err = tr.Resolve(ctx, f.owner.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// slowAccounts bloquea hasta release y respeta la cancelación del ctx como
// lo haría pgx.
type slowAccounts struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *slowAccounts) GetByUserID(ctx context.Context, userID string) (*repository.Account, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
		return &repository.Account{ID: "acc-1", UserID: userID}, nil
	}
}

func TestTenantResolver_SharedLookupSurvivesCallerCancel(t *testing.T) {
	accts := &slowAccounts{started: make(chan struct{}), release: make(chan struct{})}
	tr := NewTenantResolver(accts, time.Minute)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = tr.Resolve(firstCtx, "u-1")
	}()
	<-accts.started

	type res struct {
		a   *repository.Account
		err error
	}
	second := make(chan res, 1)
	go func() {
		a, err := tr.Resolve(context.Background(), "u-1")
		second <- res{a, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	close(accts.release)

	select {
	case r := <-second:
		require.NoError(t, r.err)
		assert.Equal(t, "acc-1", r.a.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("second resolve never returned")
	}
	<-firstDone
	assert.EqualValues(t, 1, accts.calls.Load())
}

func TestWithRateLimit(t *testing.T) {
	h := Chain(okHandler(), WithRateLimit(rate.NewMemoryLimiter(1, time.Minute), 1, nil))

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}
	assert.Equal(t, http.StatusNoContent, do().Code)
	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", errorCode(t, rec))
}

func TestWithRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }), WithRecover())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, rec))
}

func TestWithRequestID(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}), WithRequestID(), WithLogging())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(rec, r)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestWithCORS(t *testing.T) {
	h := Chain(okHandler(), WithCORS([]string{"https://app.gym.test/"}))

	r := httptest.NewRequest(http.MethodOptions, "/v1/members", nil)
	r.Header.Set("Origin", "https://app.gym.test")
	r.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.gym.test", rec.Header().Get("Access-Control-Allow-Origin"))

	r.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
