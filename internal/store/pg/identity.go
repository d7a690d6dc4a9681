package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

type scanner interface {
	Scan(dest ...any) error
}

// collect recorre rows con scan y retorna un slice no-nil.
func collect[T any](rows pgx.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ─── users ───

type userRepo struct{ q querier }

const userCols = `id, name, email, password_hash, role, is_email_verified, created_at, updated_at`

func scanUser(s scanner) (repository.User, error) {
	var u repository.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r userRepo) Create(ctx context.Context, u repository.User) (*repository.User, error) {
	u.ID = newID(u.ID)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := nowUTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, wrap("create user", err)
	}
	return &u, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get user", err)
	}
	return &u, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email)))
	if err != nil {
		return nil, wrap("get user by email", err)
	}
	return &u, nil
}

func (r userRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, nowUTC())
	return affected(tag, err, "update password")
}

func (r userRepo) SetEmailVerified(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET is_email_verified = TRUE, updated_at = $2 WHERE id = $1`, id, nowUTC())
	return affected(tag, err, "verify email")
}

// ─── tokens ───

type tokenRepo struct{ q querier }

func (r tokenRepo) Create(ctx context.Context, t repository.AuthToken) error {
	t.ID = newID(t.ID)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = nowUTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO auth_tokens (id, user_id, kind, token_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.UserID, t.Kind, t.TokenHash, t.ExpiresAt, t.UsedAt, t.CreatedAt)
	return wrap("create token", err)
}

func (r tokenRepo) Consume(ctx context.Context, kind repository.TokenKind, tokenHash string, now time.Time) (*repository.AuthToken, error) {
	var t repository.AuthToken
	err := r.q.QueryRow(ctx, `
		UPDATE auth_tokens SET used_at = $3
		WHERE kind = $1 AND token_hash = $2 AND used_at IS NULL AND expires_at > $3
		RETURNING id, user_id, kind, token_hash, expires_at, used_at, created_at`,
		kind, tokenHash, now,
	).Scan(&t.ID, &t.UserID, &t.Kind, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		return nil, wrap("consume token", err)
	}
	return &t, nil
}

func (r tokenRepo) RevokeAll(ctx context.Context, userID string, kind repository.TokenKind, now time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE auth_tokens SET used_at = $3 WHERE user_id = $1 AND kind = $2 AND used_at IS NULL`,
		userID, kind, now)
	return wrap("revoke tokens", err)
}

// ─── accounts ───

type accountRepo struct{ q querier }

const accountCols = `id, user_id, owner_name, address, contact_info, super_admin_id, created_at, updated_at`

func scanAccount(s scanner) (repository.Account, error) {
	var a repository.Account
	err := s.Scan(&a.ID, &a.UserID, &a.OwnerName, &a.Address, &a.ContactInfo, &a.SuperAdminID, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r accountRepo) Create(ctx context.Context, a repository.Account) (*repository.Account, error) {
	a.ID = newID(a.ID)
	now := nowUTC()
	a.CreatedAt, a.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (`+accountCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.OwnerName, a.Address, a.ContactInfo, a.SuperAdminID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, wrap("create account", err)
	}
	return &a, nil
}

func (r accountRepo) GetByUserID(ctx context.Context, userID string) (*repository.Account, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	a, err := scanAccount(r.q.QueryRow(ctx, `SELECT `+accountCols+` FROM accounts WHERE user_id = $1`, userID))
	if err != nil {
		return nil, wrap("get account by user", err)
	}
	return &a, nil
}

func (r accountRepo) GetByID(ctx context.Context, superAdminID, id string) (*repository.Account, error) {
	if !validID(id) || !validID(superAdminID) {
		return nil, repository.ErrNotFound
	}
	a, err := scanAccount(r.q.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id = $1 AND super_admin_id = $2`, id, superAdminID))
	if err != nil {
		return nil, wrap("get account", err)
	}
	return &a, nil
}

func (r accountRepo) List(ctx context.Context, superAdminID string) ([]repository.Account, error) {
	if !validID(superAdminID) {
		return []repository.Account{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE super_admin_id = $1 ORDER BY created_at DESC`, superAdminID)
	if err != nil {
		return nil, wrap("list accounts", err)
	}
	out, err := collect(rows, scanAccount)
	return out, wrap("list accounts", err)
}

func (r accountRepo) Update(ctx context.Context, superAdminID string, a repository.Account) (*repository.Account, error) {
	if !validID(a.ID) || !validID(superAdminID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanAccount(r.q.QueryRow(ctx, `
		UPDATE accounts SET owner_name = $3, address = $4, contact_info = $5, updated_at = $6
		WHERE id = $1 AND super_admin_id = $2
		RETURNING `+accountCols,
		a.ID, superAdminID, a.OwnerName, a.Address, a.ContactInfo, nowUTC()))
	if err != nil {
		return nil, wrap("update account", err)
	}
	return &out, nil
}

func (r accountRepo) Delete(ctx context.Context, superAdminID, id string) error {
	if !validID(id) || !validID(superAdminID) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND super_admin_id = $2`, id, superAdminID)
	return affected(tag, err, "delete account")
}
