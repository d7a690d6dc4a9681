package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// ─── branches ───

type branchRepo struct{ d *db }

func branchAccount(b repository.Branch) string { return b.AccountID }
func branchID(b repository.Branch) string { return b.ID }
func branchCreated(b repository.Branch) time.Time { return b.CreatedAt }

func (r branchRepo) Create(ctx context.Context, b repository.Branch) (*repository.Branch, error) {
	defer r.d.lock()()
	st := r.d.st
	b.SpocEmail = strings.ToLower(strings.TrimSpace(b.SpocEmail))
	if r.spocTaken(b.AccountID, b.SpocEmail, b.ID) {
		return nil, repository.ErrConflict
	}
	st.stamp(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	st.branches[b.ID] = detach(b)
	return &b, nil
}

func (r branchRepo) spocTaken(accountID, email, exceptID string) bool {
	return exists(r.d.st.branches, accountID, exceptID, branchAccount, branchID, func(x repository.Branch) bool {
		return fold(x.SpocEmail, email)
	})
}

func (r branchRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Branch, error) {
	defer r.d.lock()()
	b, ok := get(r.d.st.branches, accountID, id, branchAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r branchRepo) List(ctx context.Context, accountID string) ([]repository.Branch, error) {
	defer r.d.lock()()
	return scoped(r.d.st.branches, accountID, branchAccount, branchCreated), nil
}

func (r branchRepo) Update(ctx context.Context, accountID string, b repository.Branch) (*repository.Branch, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.branches, accountID, b.ID, branchAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.SpocEmail = strings.ToLower(strings.TrimSpace(b.SpocEmail))
	if r.spocTaken(accountID, b.SpocEmail, b.ID) {
		return nil, repository.ErrConflict
	}
	b.AccountID, b.UserID, b.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	b.UpdatedAt = st.now()
	st.branches[b.ID] = detach(b)
	return &b, nil
}

func (r branchRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.branches, accountID, id, branchAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.branches, id)
	return nil
}

func (r branchRepo) ExistsSpocEmail(ctx context.Context, accountID, email, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.spocTaken(accountID, email, exceptID), nil
}

// ─── trainers ───

type trainerRepo struct{ d *db }

func trainerAccount(t repository.Trainer) string { return t.AccountID }
func trainerID(t repository.Trainer) string { return t.ID }
func trainerCreated(t repository.Trainer) time.Time { return t.CreatedAt }

func (r trainerRepo) contactTaken(accountID, email, phone, exceptID string) bool {
	return exists(r.d.st.trainers, accountID, exceptID, trainerAccount, trainerID, func(x repository.Trainer) bool {
		return (email != "" && fold(x.Email, email)) || (phone != "" && x.PhoneNumber == phone)
	})
}

func (r trainerRepo) Create(ctx context.Context, t repository.Trainer) (*repository.Trainer, error) {
	defer r.d.lock()()
	st := r.d.st
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	if r.contactTaken(t.AccountID, t.Email, t.PhoneNumber, t.ID) {
		return nil, repository.ErrConflict
	}
	t.Specialization = slices.Clone(t.Specialization)
	st.stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	st.trainers[t.ID] = detach(t)
	return &t, nil
}

func (r trainerRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Trainer, error) {
	defer r.d.lock()()
	t, ok := get(r.d.st.trainers, accountID, id, trainerAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r trainerRepo) List(ctx context.Context, accountID string) ([]repository.Trainer, error) {
	defer r.d.lock()()
	return scoped(r.d.st.trainers, accountID, trainerAccount, trainerCreated), nil
}

func (r trainerRepo) Update(ctx context.Context, accountID string, t repository.Trainer) (*repository.Trainer, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.trainers, accountID, t.ID, trainerAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	if r.contactTaken(accountID, t.Email, t.PhoneNumber, t.ID) {
		return nil, repository.ErrConflict
	}
	t.Specialization = slices.Clone(t.Specialization)
	t.AccountID, t.UserID, t.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	t.UpdatedAt = st.now()
	st.trainers[t.ID] = detach(t)
	return &t, nil
}

func (r trainerRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.trainers, accountID, id, trainerAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.trainers, id)
	return nil
}

func (r trainerRepo) ExistsContact(ctx context.Context, accountID, email, phone, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.contactTaken(accountID, email, phone, exceptID), nil
}

// ─── members ───

type memberRepo struct{ d *db }

func memberAccount(m repository.Member) string { return m.AccountID }
func memberID(m repository.Member) string { return m.ID }
func memberCreated(m repository.Member) time.Time { return m.CreatedAt }

func (r memberRepo) phoneTaken(accountID, phone, exceptID string) bool {
	return exists(r.d.st.members, accountID, exceptID, memberAccount, memberID, func(x repository.Member) bool {
		return x.PhoneNumber == phone
	})
}

func (r memberRepo) Create(ctx context.Context, m repository.Member) (*repository.Member, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.phoneTaken(m.AccountID, m.PhoneNumber, m.ID) {
		return nil, repository.ErrConflict
	}
	st.stamp(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	st.members[m.ID] = detach(m)
	return &m, nil
}

func (r memberRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Member, error) {
	defer r.d.lock()()
	m, ok := get(r.d.st.members, accountID, id, memberAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

// Lock equivale a GetByID: el mutex del store ya serializa la transacción.
func (r memberRepo) Lock(ctx context.Context, accountID, id string) (*repository.Member, error) {
	return r.GetByID(ctx, accountID, id)
}

func (r memberRepo) List(ctx context.Context, accountID string) ([]repository.Member, error) {
	defer r.d.lock()()
	return scoped(r.d.st.members, accountID, memberAccount, memberCreated), nil
}

func (r memberRepo) Update(ctx context.Context, accountID string, m repository.Member) (*repository.Member, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.members, accountID, m.ID, memberAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.phoneTaken(accountID, m.PhoneNumber, m.ID) {
		return nil, repository.ErrConflict
	}
	m.AccountID, m.UserID, m.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	m.UpdatedAt = st.now()
	st.members[m.ID] = detach(m)
	return &m, nil
}

func (r memberRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.members, accountID, id, memberAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.members, id)
	return nil
}

func (r memberRepo) ExistsPhone(ctx context.Context, accountID, phone, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.phoneTaken(accountID, phone, exceptID), nil
}

// ─── plans ───

type planRepo struct{ d *db }

func planAccount(p repository.MembershipPlan) string { return p.AccountID }
func planID(p repository.MembershipPlan) string { return p.ID }
func planCreated(p repository.MembershipPlan) time.Time { return p.CreatedAt }

func (r planRepo) nameTaken(accountID, name, exceptID string) bool {
	return exists(r.d.st.plans, accountID, exceptID, planAccount, planID, func(x repository.MembershipPlan) bool {
		return fold(x.PlanName, name)
	})
}

func (r planRepo) Create(ctx context.Context, p repository.MembershipPlan) (*repository.MembershipPlan, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.nameTaken(p.AccountID, p.PlanName, p.ID) {
		return nil, repository.ErrConflict
	}
	st.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	st.plans[p.ID] = detach(p)
	return &p, nil
}

func (r planRepo) GetByID(ctx context.Context, accountID, id string) (*repository.MembershipPlan, error) {
	defer r.d.lock()()
	p, ok := get(r.d.st.plans, accountID, id, planAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r planRepo) List(ctx context.Context, accountID string) ([]repository.MembershipPlan, error) {
	defer r.d.lock()()
	return scoped(r.d.st.plans, accountID, planAccount, planCreated), nil
}

func (r planRepo) Update(ctx context.Context, accountID string, p repository.MembershipPlan) (*repository.MembershipPlan, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.plans, accountID, p.ID, planAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.nameTaken(accountID, p.PlanName, p.ID) {
		return nil, repository.ErrConflict
	}
	p.AccountID, p.UserID, p.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	p.UpdatedAt = st.now()
	st.plans[p.ID] = detach(p)
	return &p, nil
}

func (r planRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.plans, accountID, id, planAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.plans, id)
	return nil
}

func (r planRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	defer r.d.lock()()
	return r.nameTaken(accountID, name, exceptID), nil
}
