package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/email"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/security/password"
	"github.com/dropDatabas3/gymcore/internal/store/memory"
)

type env struct {
	svc    Service
	st     *memory.Store
	mails  *email.Recorder
	issuer *jwtx.Issuer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	keys, err := jwtx.NewEd25519()
	require.NoError(t, err)
	rec := &email.Recorder{}
	mailer, err := email.NewMailer(rec)
	require.NoError(t, err)
	st := memory.New()
	iss := jwtx.NewIssuer("http://gym.test", keys, 15*time.Minute)
	return &env{
		svc: New(Deps{
			Store:         st,
			Issuer:        iss,
			Mailer:        mailer,
			PublicBaseURL: "http://gym.test/",
			Policy:        password.DefaultPolicy,
			Hash:          password.Fast,
		}),
		st:     st,
		mails:  rec,
		issuer: iss,
	}
}

var tokenRe = regexp.MustCompile(`token=([A-Za-z0-9_\-]+)`)

func (e *env) lastToken(t *testing.T) string {
	t.Helper()
	msg, ok := e.mails.Last()
	require.True(t, ok)
	m := tokenRe.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2)
	return m[1]
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: " Ana@Gym.test ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@gym.test", res.User.Email)
	assert.Equal(t, repository.RoleAccountUser, res.User.Role)
	assert.NotEmpty(t, res.Tokens.Refresh.Token)

	claims, err := e.issuer.ParseAccess(res.Tokens.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)

	_, err = e.svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@gym.test", Password: "secret123"})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)

	_, err = e.svc.Login(ctx, dto.LoginRequest{Email: "ana@gym.test", Password: "secret123"})
	require.NoError(t, err)

	_, err = e.svc.Login(ctx, dto.LoginRequest{Email: "ana@gym.test", Password: "nope12345"})
	assert.ErrorIs(t, err, httperrors.ErrInvalidCredentials)
	_, err = e.svc.Login(ctx, dto.LoginRequest{Email: "ghost@gym.test", Password: "secret123"})
	assert.ErrorIs(t, err, httperrors.ErrInvalidCredentials)
}

func TestRegister_WeakPassword(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@gym.test", Password: "short"})
	assert.ErrorIs(t, err, httperrors.ErrWeakPassword)

	_, err = e.st.Users().GetByEmail(context.Background(), "ana@gym.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRefreshRotation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@gym.test", Password: "secret123"})
	require.NoError(t, err)

	next, err := e.svc.Refresh(ctx, res.Tokens.Refresh.Token)
	require.NoError(t, err)
	assert.NotEqual(t, res.Tokens.Refresh.Token, next.Tokens.Refresh.Token)

	// el token viejo ya no sirve
	_, err = e.svc.Refresh(ctx, res.Tokens.Refresh.Token)
	assert.ErrorIs(t, err, httperrors.ErrTokenInvalid)

	require.NoError(t, e.svc.Logout(ctx, next.Tokens.Refresh.Token))
	assert.ErrorIs(t, e.svc.Logout(ctx, next.Tokens.Refresh.Token), httperrors.ErrNotFound)
}

func TestForgotAndResetPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@gym.test", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, e.svc.ForgotPassword(ctx, "ghost@gym.test"))
	assert.Empty(t, e.mails.Sent())

	require.NoError(t, e.svc.ForgotPassword(ctx, "ANA@gym.test"))
	tok := e.lastToken(t)

	assert.ErrorIs(t, e.svc.ResetPassword(ctx, tok, "weak"), httperrors.ErrWeakPassword)
	require.NoError(t, e.svc.ResetPassword(ctx, tok, "newsecret456"))
	assert.ErrorIs(t, e.svc.ResetPassword(ctx, tok, "newsecret789"), httperrors.ErrTokenInvalid)

	_, err = e.svc.Login(ctx, dto.LoginRequest{Email: "ana@gym.test", Password: "newsecret456"})
	require.NoError(t, err)

	// los refresh previos quedaron revocados
	_, err = e.svc.Refresh(ctx, res.Tokens.Refresh.Token)
	assert.ErrorIs(t, err, httperrors.ErrTokenInvalid)
}

func TestVerifyEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@gym.test", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, e.svc.SendVerification(ctx, res.User.ID))
	tok := e.lastToken(t)
	require.NoError(t, e.svc.VerifyEmail(ctx, tok))
	assert.ErrorIs(t, e.svc.VerifyEmail(ctx, tok), httperrors.ErrTokenInvalid)

	u, err := e.st.Users().GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)

	assert.ErrorIs(t, e.svc.SendVerification(ctx, res.User.ID), httperrors.ErrBadRequest)
}
