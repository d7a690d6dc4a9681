// Package auth implementa register, login, rotación de refresh tokens y los
// flujos de reset de password y verificación de email.
package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/email"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/security/password"
	"github.com/dropDatabas3/gymcore/internal/security/token"
)

// Service define las operaciones de /v1/auth.
type Service interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error)
	// ForgotPassword nunca revela si el email existe.
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	SendVerification(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, verifyToken string) error
}

type Deps struct {
	Store      repository.Store
	Issuer     *jwtx.Issuer
	Mailer     *email.Mailer
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	VerifyTTL  time.Duration
	// PublicBaseURL arma los links de los emails.
	PublicBaseURL string
	Policy        password.Policy
	Hash          password.Params
	Now           func() time.Time
}

type service struct {
	deps Deps
}

func New(d Deps) Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.RefreshTTL <= 0 {
		d.RefreshTTL = 720 * time.Hour
	}
	if d.ResetTTL <= 0 {
		d.ResetTTL = 10 * time.Minute
	}
	if d.VerifyTTL <= 0 {
		d.VerifyTTL = 24 * time.Hour
	}
	if d.Hash.KeyLen == 0 {
		d.Hash = password.Default
	}
	return &service{deps: d}
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *service) checkPolicy(pw string) error {
	if reasons := s.deps.Policy.Validate(pw); len(reasons) > 0 {
		return httperrors.ErrWeakPassword.WithDetail(strings.Join(reasons, ", "))
	}
	return nil
}

func (s *service) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Register"))

	if err := s.checkPolicy(in.Password); err != nil {
		return nil, err
	}
	hash, err := password.Hash(s.deps.Hash, in.Password)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}

	var out *dto.AuthResult
	err = s.deps.Store.InTx(ctx, func(tx repository.Repositories) error {
		u, err := tx.Users().Create(ctx, repository.User{
			Name:         strings.TrimSpace(in.Name),
			Email:        normEmail(in.Email),
			PasswordHash: hash,
			Role:         repository.RoleAccountUser,
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return httperrors.ErrAlreadyExists.WithDetail("email already taken")
			}
			return err
		}
		out, err = s.issue(ctx, tx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("user registered", logger.UserID(out.User.ID))
	return out, nil
}

func (s *service) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Login"))

	u, err := s.deps.Store.Users().GetByEmail(ctx, normEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Verify(in.Password, u.PasswordHash) {
		log.Debug("password mismatch", logger.UserID(u.ID))
		return nil, httperrors.ErrInvalidCredentials
	}
	if password.NeedsRehash(s.deps.Hash, u.PasswordHash) {
		if h, err := password.Hash(s.deps.Hash, in.Password); err == nil {
			if err := s.deps.Store.Users().UpdatePassword(ctx, u.ID, h); err != nil {
				log.Warn("rehash failed", logger.Err(err))
			}
		}
	}
	return s.issue(ctx, s.deps.Store, u)
}

// issue emite access JWT + refresh opaco (persistido por hash).
func (s *service) issue(ctx context.Context, repos repository.Repositories, u *repository.User) (*dto.AuthResult, error) {
	access, exp, err := s.deps.Issuer.IssueAccess(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}
	plain, hash, err := token.New()
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}
	now := s.deps.Now().UTC()
	rexp := now.Add(s.deps.RefreshTTL)
	if err := repos.Tokens().Create(ctx, repository.AuthToken{
		UserID:    u.ID,
		Kind:      repository.TokenRefresh,
		TokenHash: hash,
		ExpiresAt: rexp,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &dto.AuthResult{
		User: u,
		Tokens: dto.Tokens{
			Access:  dto.Token{Token: access, Expires: exp},
			Refresh: dto.Token{Token: plain, Expires: rexp},
		},
	}, nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.deps.Store.Tokens().Consume(ctx, repository.TokenRefresh, token.Hash(refreshToken), s.deps.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return httperrors.ErrNotFound.WithDetail("refresh token not found")
	}
	return err
}

// Refresh rota el refresh token: el viejo queda consumido y se emite un par nuevo.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	var out *dto.AuthResult
	err := s.deps.Store.InTx(ctx, func(tx repository.Repositories) error {
		t, err := tx.Tokens().Consume(ctx, repository.TokenRefresh, token.Hash(refreshToken), s.deps.Now().UTC())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return httperrors.ErrTokenInvalid.WithDetail("refresh token invalid or expired")
			}
			return err
		}
		u, err := tx.Users().GetByID(ctx, t.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return httperrors.ErrTokenInvalid
			}
			return err
		}
		out, err = s.issue(ctx, tx, u)
		return err
	})
	return out, err
}

func (s *service) link(path, plain string) string {
	return strings.TrimRight(s.deps.PublicBaseURL, "/") + path + "?token=" + url.QueryEscape(plain)
}

// newOpaque persiste un token de un solo uso y devuelve el valor en claro.
func (s *service) newOpaque(ctx context.Context, userID string, kind repository.TokenKind, ttl time.Duration) (string, error) {
	plain, hash, err := token.New()
	if err != nil {
		return "", err
	}
	now := s.deps.Now().UTC()
	err = s.deps.Store.Tokens().Create(ctx, repository.AuthToken{
		UserID:    userID,
		Kind:      kind,
		TokenHash: hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	return plain, err
}

func (s *service) ForgotPassword(ctx context.Context, emailAddr string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("ForgotPassword"))

	u, err := s.deps.Store.Users().GetByEmail(ctx, normEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("forgot password for unknown email")
			return nil
		}
		return err
	}
	plain, err := s.newOpaque(ctx, u.ID, repository.TokenResetPassword, s.deps.ResetTTL)
	if err != nil {
		return err
	}
	if s.deps.Mailer == nil {
		log.Warn("mailer not configured, reset email skipped", logger.UserID(u.ID))
		return nil
	}
	if err := s.deps.Mailer.SendReset(ctx, u.Email, u.Name, s.link("/v1/auth/reset-password", plain), s.deps.ResetTTL); err != nil {
		log.Error("reset email failed", logger.UserID(u.ID), logger.Err(err))
	}
	return nil
}

// ResetPassword cambia la password, consume el token y revoca los refresh del usuario.
func (s *service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if strings.TrimSpace(resetToken) == "" {
		return httperrors.ErrTokenMissing
	}
	if err := s.checkPolicy(newPassword); err != nil {
		return err
	}
	hash, err := password.Hash(s.deps.Hash, newPassword)
	if err != nil {
		return httperrors.ErrInternalServerError.WithCause(err)
	}
	now := s.deps.Now().UTC()
	return s.deps.Store.InTx(ctx, func(tx repository.Repositories) error {
		t, err := tx.Tokens().Consume(ctx, repository.TokenResetPassword, token.Hash(resetToken), now)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return httperrors.ErrTokenInvalid.WithDetail("password reset failed")
			}
			return err
		}
		if err := tx.Users().UpdatePassword(ctx, t.UserID, hash); err != nil {
			return err
		}
		return tx.Tokens().RevokeAll(ctx, t.UserID, repository.TokenRefresh, now)
	})
}

func (s *service) SendVerification(ctx context.Context, userID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("SendVerification"))

	u, err := s.deps.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return httperrors.ErrBadRequest.WithDetail("email already verified")
	}
	plain, err := s.newOpaque(ctx, u.ID, repository.TokenVerifyEmail, s.deps.VerifyTTL)
	if err != nil {
		return err
	}
	if s.deps.Mailer == nil {
		log.Warn("mailer not configured, verification email skipped", logger.UserID(u.ID))
		return nil
	}
	if err := s.deps.Mailer.SendVerify(ctx, u.Email, u.Name, s.link("/v1/auth/verify-email", plain), s.deps.VerifyTTL); err != nil {
		return httperrors.ErrServiceUnavailable.WithDetail("email delivery failed").WithCause(err)
	}
	return nil
}

func (s *service) VerifyEmail(ctx context.Context, verifyToken string) error {
	if strings.TrimSpace(verifyToken) == "" {
		return httperrors.ErrTokenMissing
	}
	return s.deps.Store.InTx(ctx, func(tx repository.Repositories) error {
		t, err := tx.Tokens().Consume(ctx, repository.TokenVerifyEmail, token.Hash(verifyToken), s.deps.Now().UTC())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return httperrors.ErrTokenInvalid.WithDetail("email verification failed")
			}
			return err
		}
		return tx.Users().SetEmailVerified(ctx, t.UserID)
	})
}
