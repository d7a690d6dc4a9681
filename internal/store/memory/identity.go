package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// ─── users ───

type userRepo struct{ d *db }

func (r userRepo) Create(ctx context.Context, u repository.User) (*repository.User, error) {
	defer r.d.lock()()
	st := r.d.st
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, x := range st.users {
		if x.Email == u.Email {
			return nil, repository.ErrConflict
		}
	}
	st.stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	st.users[u.ID] = detach(u)
	return &u, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	defer r.d.lock()()
	u, ok := r.d.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	defer r.d.lock()()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.d.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	defer r.d.lock()()
	st := r.d.st
	u, ok := st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = st.now()
	st.users[id] = detach(u)
	return nil
}

func (r userRepo) SetEmailVerified(ctx context.Context, id string) error {
	defer r.d.lock()()
	st := r.d.st
	u, ok := st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.EmailVerified = true
	u.UpdatedAt = st.now()
	st.users[id] = detach(u)
	return nil
}

// ─── tokens ───

type tokenRepo struct{ d *db }

func (r tokenRepo) Create(ctx context.Context, t repository.AuthToken) error {
	defer r.d.lock()()
	st := r.d.st
	if _, dup := st.tokens[t.TokenHash]; dup {
		return repository.ErrConflict
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = st.now()
	}
	st.tokens[t.TokenHash] = detach(t)
	return nil
}

func (r tokenRepo) Consume(ctx context.Context, kind repository.TokenKind, tokenHash string, now time.Time) (*repository.AuthToken, error) {
	defer r.d.lock()()
	st := r.d.st
	t, ok := st.tokens[tokenHash]
	if !ok || t.Kind != kind || t.UsedAt != nil || !now.Before(t.ExpiresAt) {
		return nil, repository.ErrNotFound
	}
	t.UsedAt = ptr(now)
	st.tokens[tokenHash] = detach(t)
	return &t, nil
}

func (r tokenRepo) RevokeAll(ctx context.Context, userID string, kind repository.TokenKind, now time.Time) error {
	defer r.d.lock()()
	st := r.d.st
	for h, t := range st.tokens {
		if t.UserID == userID && t.Kind == kind && t.UsedAt == nil {
			t.UsedAt = ptr(now)
			st.tokens[h] = detach(t)
		}
	}
	return nil
}

// ─── accounts ───

type accountRepo struct{ d *db }

func (r accountRepo) Create(ctx context.Context, a repository.Account) (*repository.Account, error) {
	defer r.d.lock()()
	st := r.d.st
	for _, x := range st.accounts {
		if x.UserID == a.UserID {
			return nil, repository.ErrConflict
		}
	}
	st.stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	st.accounts[a.ID] = detach(a)
	return &a, nil
}

func (r accountRepo) GetByUserID(ctx context.Context, userID string) (*repository.Account, error) {
	defer r.d.lock()()
	for _, a := range r.d.st.accounts {
		if a.UserID == userID {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func accountOwner(a repository.Account) string           { return a.SuperAdminID }
func accountCreated(a repository.Account) time.Time      { return a.CreatedAt }

func (r accountRepo) GetByID(ctx context.Context, superAdminID, id string) (*repository.Account, error) {
	defer r.d.lock()()
	a, ok := get(r.d.st.accounts, superAdminID, id, accountOwner)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r accountRepo) List(ctx context.Context, superAdminID string) ([]repository.Account, error) {
	defer r.d.lock()()
	return scoped(r.d.st.accounts, superAdminID, accountOwner, accountCreated), nil
}

func (r accountRepo) Update(ctx context.Context, superAdminID string, a repository.Account) (*repository.Account, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.accounts, superAdminID, a.ID, accountOwner)
	if !ok {
		return nil, repository.ErrNotFound
	}
	cur.OwnerName, cur.Address, cur.ContactInfo = a.OwnerName, a.Address, a.ContactInfo
	cur.UpdatedAt = st.now()
	st.accounts[cur.ID] = detach(cur)
	return &cur, nil
}

func (r accountRepo) Delete(ctx context.Context, superAdminID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.accounts, superAdminID, id, accountOwner); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.accounts, id)
	return nil
}
