package pg

import (
	"context"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// scopedIDs reporta si accountID y los ids son UUIDs válidos. Con un valor
// inválido la fila no puede existir.
func scopedIDs(accountID string, ids ...string) bool {
	if !validID(accountID) {
		return false
	}
	for _, id := range ids {
		if !validID(id) {
			return false
		}
	}
	return true
}

func (q repos) exists(ctx context.Context, op, sql string, args ...any) (bool, error) {
	var ok bool
	if err := q.q.QueryRow(ctx, `SELECT EXISTS(`+sql+`)`, args...).Scan(&ok); err != nil {
		return false, wrap(op, err)
	}
	return ok, nil
}

// ─── branches ───

type branchRepo struct{ q querier }

const branchCols = `id, account_id, user_id, name, street_address, city, zipcode, area,
	spoc_name, spoc_email, spoc_contact, status, created_at, updated_at`

func scanBranch(s scanner) (repository.Branch, error) {
	var b repository.Branch
	err := s.Scan(&b.ID, &b.AccountID, &b.UserID, &b.Name, &b.StreetAddress, &b.City, &b.Zipcode, &b.Area,
		&b.SpocName, &b.SpocEmail, &b.SpocContact, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r branchRepo) Create(ctx context.Context, b repository.Branch) (*repository.Branch, error) {
	b.ID = newID(b.ID)
	b.SpocEmail = strings.ToLower(strings.TrimSpace(b.SpocEmail))
	now := nowUTC()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO branches (`+branchCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.AccountID, b.UserID, b.Name, b.StreetAddress, b.City, b.Zipcode, b.Area,
		b.SpocName, b.SpocEmail, b.SpocContact, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return nil, wrap("create branch", err)
	}
	return &b, nil
}

func (r branchRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Branch, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	b, err := scanBranch(r.q.QueryRow(ctx,
		`SELECT `+branchCols+` FROM branches WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get branch", err)
	}
	return &b, nil
}

func (r branchRepo) List(ctx context.Context, accountID string) ([]repository.Branch, error) {
	if !scopedIDs(accountID) {
		return []repository.Branch{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+branchCols+` FROM branches WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list branches", err)
	}
	out, err := collect(rows, scanBranch)
	return out, wrap("list branches", err)
}

func (r branchRepo) Update(ctx context.Context, accountID string, b repository.Branch) (*repository.Branch, error) {
	if !scopedIDs(accountID, b.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanBranch(r.q.QueryRow(ctx, `
		UPDATE branches SET name = $3, street_address = $4, city = $5, zipcode = $6, area = $7,
			spoc_name = $8, spoc_email = $9, spoc_contact = $10, status = $11, updated_at = $12
		WHERE id = $1 AND account_id = $2
		RETURNING `+branchCols,
		b.ID, accountID, b.Name, b.StreetAddress, b.City, b.Zipcode, b.Area,
		b.SpocName, strings.ToLower(strings.TrimSpace(b.SpocEmail)), b.SpocContact, b.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update branch", err)
	}
	return &out, nil
}

func (r branchRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete branch")
}

func (r branchRepo) ExistsSpocEmail(ctx context.Context, accountID, email, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "branch spoc email", `
		SELECT 1 FROM branches
		WHERE account_id = $1 AND lower(spoc_email) = lower($2) AND id::text <> $3`,
		accountID, strings.TrimSpace(email), exceptID)
}

// ─── trainers ───

type trainerRepo struct{ q querier }

const trainerCols = `id, account_id, user_id, branch_id, name, dob, blood_group, gender, phone_number,
	email, specialization, height, weight, status, created_at, updated_at`

func scanTrainer(s scanner) (repository.Trainer, error) {
	var t repository.Trainer
	err := s.Scan(&t.ID, &t.AccountID, &t.UserID, &t.BranchID, &t.Name, &t.DOB, &t.BloodGroup, &t.Gender,
		&t.PhoneNumber, &t.Email, &t.Specialization, &t.Height, &t.Weight, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if t.Specialization == nil {
		t.Specialization = []string{}
	}
	return t, err
}

func specs(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (r trainerRepo) Create(ctx context.Context, t repository.Trainer) (*repository.Trainer, error) {
	t.ID = newID(t.ID)
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	t.Specialization = specs(t.Specialization)
	now := nowUTC()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO trainers (`+trainerCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, t.AccountID, t.UserID, t.BranchID, t.Name, t.DOB, t.BloodGroup, t.Gender, t.PhoneNumber,
		t.Email, t.Specialization, t.Height, t.Weight, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, wrap("create trainer", err)
	}
	return &t, nil
}

func (r trainerRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Trainer, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	t, err := scanTrainer(r.q.QueryRow(ctx,
		`SELECT `+trainerCols+` FROM trainers WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get trainer", err)
	}
	return &t, nil
}

func (r trainerRepo) List(ctx context.Context, accountID string) ([]repository.Trainer, error) {
	if !scopedIDs(accountID) {
		return []repository.Trainer{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+trainerCols+` FROM trainers WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list trainers", err)
	}
	out, err := collect(rows, scanTrainer)
	return out, wrap("list trainers", err)
}

func (r trainerRepo) Update(ctx context.Context, accountID string, t repository.Trainer) (*repository.Trainer, error) {
	if !scopedIDs(accountID, t.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanTrainer(r.q.QueryRow(ctx, `
		UPDATE trainers SET branch_id = $3, name = $4, dob = $5, blood_group = $6, gender = $7,
			phone_number = $8, email = $9, specialization = $10, height = $11, weight = $12,
			status = $13, updated_at = $14
		WHERE id = $1 AND account_id = $2
		RETURNING `+trainerCols,
		t.ID, accountID, t.BranchID, t.Name, t.DOB, t.BloodGroup, t.Gender,
		t.PhoneNumber, strings.ToLower(strings.TrimSpace(t.Email)), specs(t.Specialization), t.Height, t.Weight,
		t.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update trainer", err)
	}
	return &out, nil
}

func (r trainerRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM trainers WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete trainer")
}

func (r trainerRepo) ExistsContact(ctx context.Context, accountID, email, phone, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "trainer contact", `
		SELECT 1 FROM trainers
		WHERE account_id = $1 AND id::text <> $4
		  AND (($2 <> '' AND lower(email) = lower($2)) OR ($3 <> '' AND phone_number = $3))`,
		accountID, strings.TrimSpace(email), phone, exceptID)
}

// ─── members ───

type memberRepo struct{ q querier }

const memberCols = `id, account_id, user_id, branch_id, name, phone_number, blood_group, gender, dob,
	address, street, area, zipcode, height, weight, status, created_at, updated_at`

func scanMember(s scanner) (repository.Member, error) {
	var m repository.Member
	err := s.Scan(&m.ID, &m.AccountID, &m.UserID, &m.BranchID, &m.Name, &m.PhoneNumber, &m.BloodGroup, &m.Gender, &m.DOB,
		&m.Address, &m.Street, &m.Area, &m.Zipcode, &m.Height, &m.Weight, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r memberRepo) Create(ctx context.Context, m repository.Member) (*repository.Member, error) {
	m.ID = newID(m.ID)
	now := nowUTC()
	m.CreatedAt, m.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO members (`+memberCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.ID, m.AccountID, m.UserID, m.BranchID, m.Name, m.PhoneNumber, m.BloodGroup, m.Gender, m.DOB,
		m.Address, m.Street, m.Area, m.Zipcode, m.Height, m.Weight, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, wrap("create member", err)
	}
	return &m, nil
}

func (r memberRepo) get(ctx context.Context, op, suffix, accountID, id string) (*repository.Member, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	m, err := scanMember(r.q.QueryRow(ctx,
		`SELECT `+memberCols+` FROM members WHERE id = $1 AND account_id = $2`+suffix, id, accountID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return &m, nil
}

func (r memberRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Member, error) {
	return r.get(ctx, "get member", "", accountID, id)
}

func (r memberRepo) Lock(ctx context.Context, accountID, id string) (*repository.Member, error) {
	return r.get(ctx, "lock member", " FOR UPDATE", accountID, id)
}

func (r memberRepo) List(ctx context.Context, accountID string) ([]repository.Member, error) {
	if !scopedIDs(accountID) {
		return []repository.Member{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+memberCols+` FROM members WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list members", err)
	}
	out, err := collect(rows, scanMember)
	return out, wrap("list members", err)
}

func (r memberRepo) Update(ctx context.Context, accountID string, m repository.Member) (*repository.Member, error) {
	if !scopedIDs(accountID, m.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanMember(r.q.QueryRow(ctx, `
		UPDATE members SET branch_id = $3, name = $4, phone_number = $5, blood_group = $6, gender = $7,
			dob = $8, address = $9, street = $10, area = $11, zipcode = $12, height = $13, weight = $14,
			status = $15, updated_at = $16
		WHERE id = $1 AND account_id = $2
		RETURNING `+memberCols,
		m.ID, accountID, m.BranchID, m.Name, m.PhoneNumber, m.BloodGroup, m.Gender,
		m.DOB, m.Address, m.Street, m.Area, m.Zipcode, m.Height, m.Weight,
		m.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update member", err)
	}
	return &out, nil
}

func (r memberRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM members WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete member")
}

func (r memberRepo) ExistsPhone(ctx context.Context, accountID, phone, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "member phone", `
		SELECT 1 FROM members WHERE account_id = $1 AND phone_number = $2 AND id::text <> $3`,
		accountID, phone, exceptID)
}

// ─── plans ───

type planRepo struct{ q querier }

const planCols = `id, account_id, user_id, branch_id, plan_name, plan_type, description, duration,
	price, discount_type, discount, status, created_at, updated_at`

func scanPlan(s scanner) (repository.MembershipPlan, error) {
	var p repository.MembershipPlan
	err := s.Scan(&p.ID, &p.AccountID, &p.UserID, &p.BranchID, &p.PlanName, &p.PlanType, &p.Description, &p.Duration,
		&p.Price, &p.DiscountType, &p.Discount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r planRepo) Create(ctx context.Context, p repository.MembershipPlan) (*repository.MembershipPlan, error) {
	p.ID = newID(p.ID)
	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO membership_plans (`+planCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.AccountID, p.UserID, p.BranchID, p.PlanName, p.PlanType, p.Description, p.Duration,
		p.Price, p.DiscountType, p.Discount, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, wrap("create plan", err)
	}
	return &p, nil
}

func (r planRepo) GetByID(ctx context.Context, accountID, id string) (*repository.MembershipPlan, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	p, err := scanPlan(r.q.QueryRow(ctx,
		`SELECT `+planCols+` FROM membership_plans WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get plan", err)
	}
	return &p, nil
}

func (r planRepo) List(ctx context.Context, accountID string) ([]repository.MembershipPlan, error) {
	if !scopedIDs(accountID) {
		return []repository.MembershipPlan{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+planCols+` FROM membership_plans WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list plans", err)
	}
	out, err := collect(rows, scanPlan)
	return out, wrap("list plans", err)
}

func (r planRepo) Update(ctx context.Context, accountID string, p repository.MembershipPlan) (*repository.MembershipPlan, error) {
	if !scopedIDs(accountID, p.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanPlan(r.q.QueryRow(ctx, `
		UPDATE membership_plans SET branch_id = $3, plan_name = $4, plan_type = $5, description = $6,
			duration = $7, price = $8, discount_type = $9, discount = $10, status = $11, updated_at = $12
		WHERE id = $1 AND account_id = $2
		RETURNING `+planCols,
		p.ID, accountID, p.BranchID, p.PlanName, p.PlanType, p.Description,
		p.Duration, p.Price, p.DiscountType, p.Discount, p.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update plan", err)
	}
	return &out, nil
}

func (r planRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM membership_plans WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete plan")
}

func (r planRepo) ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error) {
	if !scopedIDs(accountID) {
		return false, nil
	}
	return repos{r.q}.exists(ctx, "plan name", `
		SELECT 1 FROM membership_plans
		WHERE account_id = $1 AND lower(plan_name) = lower($2) AND id::text <> $3`,
		accountID, strings.TrimSpace(name), exceptID)
}
