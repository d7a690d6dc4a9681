package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

func memberRef(st *state, accountID, id string) *repository.MemberRef {
	m, ok := get(st.members, accountID, id, memberAccount)
	if !ok {
		return nil
	}
	return &repository.MemberRef{ID: m.ID, Name: m.Name, PhoneNumber: m.PhoneNumber}
}

func branchRef(st *state, accountID, id string) *repository.BranchRef {
	b, ok := get(st.branches, accountID, id, branchAccount)
	if !ok {
		return nil
	}
	return &repository.BranchRef{ID: b.ID, Name: b.Name}
}

// ─── subscriptions ───

type subscriptionRepo struct{ d *db }

func subscriptionAccount(s repository.Subscription) string { return s.AccountID }
func subscriptionCreated(s repository.Subscription) time.Time { return s.CreatedAt }

func (r subscriptionRepo) populate(s repository.Subscription, withBranch bool) repository.Subscription {
	st := r.d.st
	s.Member = memberRef(st, s.AccountID, s.MemberID)
	if p, ok := get(st.plans, s.AccountID, s.PlanID, planAccount); ok {
		s.Plan = &repository.PlanRef{ID: p.ID, PlanName: p.PlanName, Duration: p.Duration, Price: p.Price}
	}
	if withBranch {
		s.Branch = branchRef(st, s.AccountID, s.BranchID)
	}
	return s
}

func clearSubscriptionRefs(s *repository.Subscription) {
	s.Member, s.Plan, s.Branch, s.IsExpired = nil, nil, nil, false
}

func (r subscriptionRepo) Create(ctx context.Context, s repository.Subscription) (*repository.Subscription, error) {
	defer r.d.lock()()
	st := r.d.st
	clearSubscriptionRefs(&s)
	st.stamp(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	st.subscriptions[s.ID] = detach(s)
	return &s, nil
}

func (r subscriptionRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Subscription, error) {
	defer r.d.lock()()
	s, ok := get(r.d.st.subscriptions, accountID, id, subscriptionAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	s = r.populate(s, true)
	return &s, nil
}

func (r subscriptionRepo) List(ctx context.Context, accountID string) ([]repository.Subscription, error) {
	defer r.d.lock()()
	out := scoped(r.d.st.subscriptions, accountID, subscriptionAccount, subscriptionCreated)
	for i := range out {
		out[i] = r.populate(out[i], false)
	}
	return out, nil
}

func (r subscriptionRepo) Update(ctx context.Context, accountID string, s repository.Subscription) (*repository.Subscription, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.subscriptions, accountID, s.ID, subscriptionAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	clearSubscriptionRefs(&s)
	s.AccountID, s.UserID, s.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	s.UpdatedAt = st.now()
	st.subscriptions[s.ID] = detach(s)
	return &s, nil
}

func (r subscriptionRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.subscriptions, accountID, id, subscriptionAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.subscriptions, id)
	return nil
}

func (r subscriptionRepo) FindActive(ctx context.Context, accountID, memberID string, now time.Time) (*repository.Subscription, error) {
	defer r.d.lock()()
	for _, s := range scoped(r.d.st.subscriptions, accountID, subscriptionAccount, subscriptionCreated) {
		if s.MemberID == memberID && s.Status == repository.SubscriptionActive && !s.EndDate.Before(now) {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ─── assignments ───

type assignmentRepo struct{ d *db }

func assignmentAccount(a repository.Assignment) string { return a.AccountID }
func assignmentCreated(a repository.Assignment) time.Time { return a.CreatedAt }

func (r assignmentRepo) populate(a repository.Assignment) repository.Assignment {
	st := r.d.st
	a.Member = memberRef(st, a.AccountID, a.MemberID)
	a.Branch = branchRef(st, a.AccountID, a.BranchID)
	if t, ok := get(st.trainers, a.AccountID, a.TrainerID, trainerAccount); ok {
		a.Trainer = &repository.TrainerRef{ID: t.ID, Name: t.Name, PhoneNumber: t.PhoneNumber, Specialization: slices.Clone(t.Specialization)}
	}
	return a
}

// activeTaken replica el índice único parcial (member_id) WHERE status = 'ACTIVE'.
func (r assignmentRepo) activeTaken(a repository.Assignment) bool {
	if a.Status != repository.AssignmentActive {
		return false
	}
	for _, x := range r.d.st.assignments {
		if x.ID != a.ID && x.MemberID == a.MemberID && x.Status == repository.AssignmentActive {
			return true
		}
	}
	return false
}

func (r assignmentRepo) Create(ctx context.Context, a repository.Assignment) (*repository.Assignment, error) {
	defer r.d.lock()()
	st := r.d.st
	if r.activeTaken(a) {
		return nil, repository.ErrConflict
	}
	a.Member, a.Trainer, a.Branch = nil, nil, nil
	st.stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	st.assignments[a.ID] = detach(a)
	out := r.populate(a)
	return &out, nil
}

func (r assignmentRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Assignment, error) {
	defer r.d.lock()()
	a, ok := get(r.d.st.assignments, accountID, id, assignmentAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	a = r.populate(a)
	return &a, nil
}

func (r assignmentRepo) List(ctx context.Context, accountID string) ([]repository.Assignment, error) {
	defer r.d.lock()()
	out := scoped(r.d.st.assignments, accountID, assignmentAccount, assignmentCreated)
	for i := range out {
		out[i] = r.populate(out[i])
	}
	return out, nil
}

func (r assignmentRepo) Update(ctx context.Context, accountID string, a repository.Assignment) (*repository.Assignment, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.assignments, accountID, a.ID, assignmentAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.activeTaken(a) {
		return nil, repository.ErrConflict
	}
	a.Member, a.Trainer, a.Branch = nil, nil, nil
	a.AccountID, a.UserID, a.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	a.UpdatedAt = st.now()
	st.assignments[a.ID] = detach(a)
	out := r.populate(a)
	return &out, nil
}

func (r assignmentRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.assignments, accountID, id, assignmentAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.assignments, id)
	return nil
}

func (r assignmentRepo) CurrentForMember(ctx context.Context, accountID, memberID string) (*repository.Assignment, error) {
	defer r.d.lock()()
	var latest *repository.Assignment
	for _, a := range scoped(r.d.st.assignments, accountID, assignmentAccount, assignmentCreated) {
		if a.MemberID != memberID {
			continue
		}
		if a.Status == repository.AssignmentActive {
			out := r.populate(a)
			return &out, nil
		}
		if latest == nil {
			latest = ptr(a)
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	out := r.populate(*latest)
	return &out, nil
}

func (r assignmentRepo) CloseActive(ctx context.Context, accountID, memberID string, status repository.AssignmentStatus, at time.Time) (int, error) {
	defer r.d.lock()()
	st := r.d.st
	n := 0
	for id, a := range st.assignments {
		if a.AccountID == accountID && a.MemberID == memberID && a.Status == repository.AssignmentActive {
			a.Status = status
			a.EndDate = ptr(at)
			a.UpdatedAt = st.now()
			st.assignments[id] = detach(a)
			n++
		}
	}
	return n, nil
}

// ─── health reports ───

type healthReportRepo struct{ d *db }

func reportAccount(h repository.HealthReport) string { return h.AccountID }
func reportCreated(h repository.HealthReport) time.Time { return h.CreatedAt }

func (r healthReportRepo) Create(ctx context.Context, h repository.HealthReport) (*repository.HealthReport, error) {
	defer r.d.lock()()
	st := r.d.st
	h.Member = nil
	st.stamp(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	st.reports[h.ID] = detach(h)
	return &h, nil
}

func (r healthReportRepo) GetByID(ctx context.Context, accountID, id string) (*repository.HealthReport, error) {
	defer r.d.lock()()
	h, ok := get(r.d.st.reports, accountID, id, reportAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.Member = memberRef(r.d.st, h.AccountID, h.MemberID)
	return &h, nil
}

func (r healthReportRepo) ListByMember(ctx context.Context, accountID, memberID string) ([]repository.HealthReport, error) {
	defer r.d.lock()()
	out := make([]repository.HealthReport, 0)
	for _, h := range scoped(r.d.st.reports, accountID, reportAccount, reportCreated) {
		if h.MemberID == memberID {
			h.Member = memberRef(r.d.st, h.AccountID, h.MemberID)
			out = append(out, h)
		}
	}
	return out, nil
}

func (r healthReportRepo) ListForPeriod(ctx context.Context, accountID, memberID, month string, year int) ([]repository.HealthReport, error) {
	defer r.d.lock()()
	out := make([]repository.HealthReport, 0)
	for _, h := range scoped(r.d.st.reports, accountID, reportAccount, reportCreated) {
		if h.MemberID == memberID && h.ReportMonth == month && h.CreatedAt.UTC().Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r healthReportRepo) Update(ctx context.Context, accountID string, h repository.HealthReport) (*repository.HealthReport, error) {
	defer r.d.lock()()
	st := r.d.st
	cur, ok := get(st.reports, accountID, h.ID, reportAccount)
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.Member = nil
	h.AccountID, h.UserID, h.CreatedAt = cur.AccountID, cur.UserID, cur.CreatedAt
	h.UpdatedAt = st.now()
	st.reports[h.ID] = detach(h)
	h.Member = memberRef(st, h.AccountID, h.MemberID)
	return &h, nil
}

func (r healthReportRepo) Delete(ctx context.Context, accountID, id string) error {
	defer r.d.lock()()
	if _, ok := get(r.d.st.reports, accountID, id, reportAccount); !ok {
		return repository.ErrNotFound
	}
	delete(r.d.st.reports, id)
	return nil
}
