package gym

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/store/memory"
)

const (
	accA  = "acc-a"
	accB  = "acc-b"
	owner = "user-a"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Add(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	fail     bool
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename, _ string, body io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("s3 unavailable")
	}
	_, _ = io.Copy(io.Discard, body)
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "https://cdn.gym.test/" + objectstore.Key(folder, filename)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeUploader) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeUploader) Name() string { return "fake" }

type fixture struct {
	t     *testing.T
	ctx   context.Context
	st    *memory.Store
	up    *fakeUploader
	clock *clock
	svc   Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	up := &fakeUploader{}
	c := &clock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		st:    st,
		up:    up,
		clock: c,
		svc:   New(Deps{Store: st, Uploader: up, Now: c.Now}),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) branch(acc, email string) *repository.Branch {
	f.t.Helper()
	b, err := f.svc.Branches.Create(f.ctx, acc, owner, dto.BranchCreate{
		Name: "Centro", StreetAddress: "Av. 1", City: "Rosario", Zipcode: "2000", Area: "Centro",
		SpocName: "Lu", SpocEmail: email, SpocContact: "+54 341 555 0000",
	})
	require.NoError(f.t, err)
	return b
}

func (f *fixture) member(acc, branchID, phone string, g repository.Gender) *repository.Member {
	f.t.Helper()
	m, err := f.svc.Members.Create(f.ctx, acc, owner, dto.MemberCreate{
		BranchID: branchID, Name: "Ana", PhoneNumber: phone, DOB: &dto.Date{Time: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		Gender: string(g), Address: "Calle 1", Street: "Calle", Area: "Sur", Zipcode: "2000",
	})
	require.NoError(f.t, err)
	return m
}

func (f *fixture) trainer(acc, branchID, email, phone string) *repository.Trainer {
	f.t.Helper()
	tr, err := f.svc.Trainers.Create(f.ctx, acc, owner, dto.TrainerCreate{
		BranchID: branchID, Name: "Leo", PhoneNumber: phone, Email: email, Specialization: []string{" crossfit ", ""},
	})
	require.NoError(f.t, err)
	return tr
}

func (f *fixture) plan(acc, branchID, name, planType string, duration int, price float64) *repository.MembershipPlan {
	f.t.Helper()
	p, err := f.svc.Plans.Create(f.ctx, acc, owner, dto.PlanCreate{
		BranchID: branchID, PlanName: name, PlanType: planType, Duration: duration, Price: ptr(price),
	})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) subscribe(acc, branchID, memberID, planID string, amount float64) (*repository.Subscription, error) {
	return f.svc.Subscriptions.Create(f.ctx, acc, owner, dto.SubscriptionCreate{
		BranchID: branchID, MemberID: memberID, PlanID: planID, PaymentMode: "CARD", Amount: ptr(amount),
	})
}

func TestBranch_RoundTripAndIsolation(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "Lu@Gym.test")
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "lu@gym.test", b.SpocEmail)
	assert.Equal(t, repository.StatusActive, b.Status)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := f.svc.Branches.Get(f.ctx, accA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Name, got.Name)
	assert.Equal(t, owner, got.UserID)

	_, err = f.svc.Branches.Get(f.ctx, accB, b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	list, err := f.svc.Branches.List(f.ctx, accB)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = f.svc.Branches.Update(f.ctx, accB, b.ID, dto.BranchUpdate{Name: ptr("X")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.svc.Branches.Delete(f.ctx, accB, b.ID), repository.ErrNotFound)

	up, err := f.svc.Branches.Update(f.ctx, accA, b.ID, dto.BranchUpdate{Name: ptr("Norte")})
	require.NoError(t, err)
	assert.Equal(t, "Norte", up.Name)
	assert.Equal(t, "lu@gym.test", up.SpocEmail)
}

func TestBranch_DuplicateSpocEmail(t *testing.T) {
	f := newFixture(t)
	f.branch(accA, "lu@gym.test")
	_, err := f.svc.Branches.Create(f.ctx, accA, owner, dto.BranchCreate{
		Name: "Otra", StreetAddress: "x", City: "x", Zipcode: "1", Area: "x", SpocName: "x",
		SpocEmail: "LU@gym.test", SpocContact: "+54 341 555 0001",
	})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)
	list, _ := f.svc.Branches.List(f.ctx, accA)
	assert.Len(t, list, 1)

	// otro tenant puede usar el mismo email
	f.branch(accB, "lu@gym.test")
}

func TestBranchDelete_NoCascade(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "lu@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	tr := f.trainer(accA, b.ID, "leo@gym.test", "+5493415550002")

	require.NoError(t, f.svc.Branches.Delete(f.ctx, accA, b.ID))
	_, err := f.svc.Members.Get(f.ctx, accA, m.ID)
	assert.NoError(t, err)
	_, err = f.svc.Trainers.Get(f.ctx, accA, tr.ID)
	assert.NoError(t, err)
}

func TestMemberAndTrainer_References(t *testing.T) {
	f := newFixture(t)
	foreign := f.branch(accB, "b@gym.test")

	_, err := f.svc.Members.Create(f.ctx, accA, owner, dto.MemberCreate{
		BranchID: foreign.ID, Name: "Ana", PhoneNumber: "+5493415550001", DOB: &dto.Date{Time: time.Now()},
		Gender: "FEMALE", Address: "a", Street: "b", Area: "c", Zipcode: "d",
	})
	assert.ErrorIs(t, err, httperrors.ErrNotFound)

	b := f.branch(accA, "a@gym.test")
	tr := f.trainer(accA, b.ID, "leo@gym.test", "+5493415550002")
	assert.Equal(t, []string{"crossfit"}, tr.Specialization)

	_, err = f.svc.Trainers.Create(f.ctx, accA, owner, dto.TrainerCreate{
		BranchID: b.ID, Name: "Otro", PhoneNumber: "+5493415550099", Email: "LEO@gym.test",
	})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)

	f.member(accA, b.ID, "+5493415550001", repository.GenderFemale)
	_, err = f.svc.Members.Create(f.ctx, accA, owner, dto.MemberCreate{
		BranchID: b.ID, Name: "Eva", PhoneNumber: "+5493415550001", DOB: &dto.Date{Time: time.Now()},
		Gender: "FEMALE", Address: "a", Street: "b", Area: "c", Zipcode: "d",
	})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)
}

func TestSubscription_Create(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	p := f.plan(accA, b.ID, "Mensual", "MONTHLY", 3, 100)

	_, err := f.subscribe(accA, b.ID, m.ID, p.ID, 99.99)
	assert.ErrorIs(t, err, httperrors.ErrAmountMismatch)
	list, _ := f.svc.Subscriptions.List(f.ctx, accA)
	assert.Empty(t, list)

	_, err = f.subscribe(accA, b.ID, m.ID, "00000000-0000-0000-0000-000000000000", 100)
	assert.ErrorIs(t, err, httperrors.ErrBadRequest)

	s, err := f.subscribe(accA, b.ID, m.ID, p.ID, 100)
	require.NoError(t, err)
	now := f.clock.Now()
	assert.Equal(t, now, s.StartDate)
	assert.Equal(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC), s.EndDate)
	assert.Equal(t, repository.PaymentSuccess, s.PaymentStatus)
	assert.Equal(t, repository.SubscriptionActive, s.Status)
	assert.True(t, strings.HasPrefix(s.TransactionID, "TXN-"))
	assert.False(t, s.IsExpired)

	_, err = f.subscribe(accA, b.ID, m.ID, p.ID, 100)
	assert.ErrorIs(t, err, httperrors.ErrDuplicateActiveSubscription)

	// vencida pero ACTIVE: se permite una nueva y la vieja se lee como expirada
	f.clock.Add(100 * 24 * time.Hour)
	got, err := f.svc.Subscriptions.Get(f.ctx, accA, s.ID)
	require.NoError(t, err)
	assert.True(t, got.IsExpired)
	assert.Equal(t, repository.SubscriptionActive, got.Status)
	_, err = f.subscribe(accA, b.ID, m.ID, p.ID, 100)
	require.NoError(t, err)

	_, err = f.svc.Subscriptions.Get(f.ctx, accB, s.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubscription_CancelCompletesAssignment(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	tr := f.trainer(accA, b.ID, "leo@gym.test", "+5493415550002")
	p := f.plan(accA, b.ID, "Semanal", "WEEKLY", 2, 30)

	s, err := f.subscribe(accA, b.ID, m.ID, p.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, s.StartDate.AddDate(0, 0, 14), s.EndDate)

	a, err := f.svc.Assignments.Assign(f.ctx, accA, owner, dto.AssignmentCreate{BranchID: b.ID, MemberID: m.ID, TrainerID: tr.ID})
	require.NoError(t, err)

	up, err := f.svc.Subscriptions.Update(f.ctx, accA, s.ID, dto.SubscriptionUpdate{Status: ptr("CANCELLED")})
	require.NoError(t, err)
	assert.Equal(t, repository.SubscriptionCancelled, up.Status)
	assert.Equal(t, s.EndDate, up.EndDate)

	cur, err := f.svc.Assignments.Current(f.ctx, accA, m.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, cur.ID)
	assert.Equal(t, repository.AssignmentCompleted, cur.Status)
	require.NotNil(t, cur.EndDate)
}

func TestSubscription_UpdateAmountChecked(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	p := f.plan(accA, b.ID, "Anual", "YEARLY", 1, 500)
	s, err := f.subscribe(accA, b.ID, m.ID, p.ID, 500)
	require.NoError(t, err)

	_, err = f.svc.Subscriptions.Update(f.ctx, accA, s.ID, dto.SubscriptionUpdate{Amount: ptr(10.0)})
	assert.ErrorIs(t, err, httperrors.ErrAmountMismatch)

	up, err := f.svc.Subscriptions.Update(f.ctx, accA, s.ID, dto.SubscriptionUpdate{PaymentStatus: ptr("PAID")})
	require.NoError(t, err)
	assert.Equal(t, repository.PaymentPaid, up.PaymentStatus)
	assert.Equal(t, 500.0, up.Amount)
}

func TestAssignment_Reassign(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	t1 := f.trainer(accA, b.ID, "t1@gym.test", "+5493415550002")
	t2 := f.trainer(accA, b.ID, "t2@gym.test", "+5493415550003")

	first, err := f.svc.Assignments.Assign(f.ctx, accA, owner, dto.AssignmentCreate{BranchID: b.ID, MemberID: m.ID, TrainerID: t1.ID})
	require.NoError(t, err)
	assert.Equal(t, owner, first.AssignedBy)
	require.NotNil(t, first.Trainer)
	assert.Equal(t, "Leo", first.Trainer.Name)

	second, err := f.svc.Assignments.Assign(f.ctx, accA, owner, dto.AssignmentCreate{BranchID: b.ID, MemberID: m.ID, TrainerID: t2.ID})
	require.NoError(t, err)

	list, err := f.svc.Assignments.List(f.ctx, accA)
	require.NoError(t, err)
	active := 0
	for _, a := range list {
		if a.Status == repository.AssignmentActive {
			active++
			assert.Equal(t, second.ID, a.ID)
		}
		if a.ID == first.ID {
			assert.Equal(t, repository.AssignmentInactive, a.Status)
			assert.NotNil(t, a.EndDate)
		}
	}
	assert.Equal(t, 1, active)

	// reactivar la primera choca con la activa
	_, err = f.svc.Assignments.Update(f.ctx, accA, first.ID, dto.AssignmentUpdate{Status: ptr("ACTIVE")})
	assert.ErrorIs(t, err, httperrors.ErrConflict)

	done, err := f.svc.Assignments.Update(f.ctx, accA, second.ID, dto.AssignmentUpdate{Status: ptr("INACTIVE")})
	require.NoError(t, err)
	require.NotNil(t, done.EndDate)

	_, err = f.svc.Assignments.Assign(f.ctx, accB, owner, dto.AssignmentCreate{BranchID: b.ID, MemberID: m.ID, TrainerID: t1.ID})
	assert.ErrorIs(t, err, httperrors.ErrNotFound)
}

func TestHealthReport_Derivation(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	fem := f.member(accA, b.ID, "+5493415550001", repository.GenderFemale)
	male := f.member(accA, b.ID, "+5493415550002", repository.GenderMale)
	other := f.member(accA, b.ID, "+5493415550003", repository.GenderOther)

	metrics := dto.Metrics{Height: ptr(180.0), Weight: ptr(81.0), Chest: ptr(100.0), Bust: ptr(90.0), Waist: ptr(80.0)}

	rf, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: fem.ID, Metrics: metrics})
	require.NoError(t, err)
	assert.Equal(t, repository.GenderFemale, rf.Gender)
	assert.Nil(t, rf.MaleParameters)
	require.NotNil(t, rf.FemaleParameters)
	assert.Equal(t, 90.0, *rf.FemaleParameters.Bust)
	require.NotNil(t, rf.BMI)
	assert.Equal(t, 25.0, rf.BMI.Value)
	assert.Equal(t, "kg/m²", rf.BMI.Unit)
	assert.Equal(t, "March", rf.ReportMonth)

	rm, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: male.ID, Metrics: metrics})
	require.NoError(t, err)
	assert.Nil(t, rm.FemaleParameters)
	require.NotNil(t, rm.MaleParameters)
	assert.Equal(t, 100.0, *rm.MaleParameters.Chest)

	ro, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: other.ID, Metrics: metrics})
	require.NoError(t, err)
	assert.Nil(t, ro.MaleParameters)
	assert.Nil(t, ro.FemaleParameters)

	// sin altura no hay BMI
	rn, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: male.ID, Metrics: dto.Metrics{Weight: ptr(70.0)}})
	require.NoError(t, err)
	assert.Nil(t, rn.BMI)

	// el update recalcula BMI con la altura guardada y conserva el snapshot
	up, err := f.svc.HealthReports.Update(f.ctx, accA, rf.ID, dto.HealthReportUpdate{Metrics: dto.Metrics{Weight: ptr(64.8), Chest: ptr(95.0)}})
	require.NoError(t, err)
	assert.Equal(t, 20.0, up.BMI.Value)
	assert.Equal(t, 180.0, up.Height.Value)
	assert.Nil(t, up.MaleParameters)
	assert.Equal(t, repository.GenderFemale, up.Gender)
}

func TestHealthReport_Reads(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)

	_, err := f.svc.HealthReports.ListByMember(f.ctx, accA, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mk := func() *repository.HealthReport {
		r, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: m.ID, Metrics: dto.Metrics{Weight: ptr(80.0)}})
		require.NoError(t, err)
		return r
	}
	r1 := mk()
	f.clock.Add(24 * time.Hour)
	r2 := mk()
	f.clock.Add(30 * 24 * time.Hour) // abril
	r3 := mk()

	list, err := f.svc.HealthReports.ListByMember(f.ctx, accA, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, r3.ID, list[0].ID)

	periods, err := f.svc.HealthReports.Period(f.ctx, accA, r1.ID)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, 2026, periods[0].Year)
	assert.Equal(t, "March", periods[0].Month)
	ids := []string{}
	for _, r := range periods[0].Reports {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{r1.ID, r2.ID}, ids)

	_, err = f.svc.HealthReports.Period(f.ctx, accB, r1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func image(name string) *Image {
	body := []byte("\x89PNG fake")
	return &Image{Filename: name, ContentType: objectstore.ContentType(name), Size: int64(len(body)), Body: bytes.NewReader(body)}
}

func TestProduct_SlugAndImages(t *testing.T) {
	f := newFixture(t)
	cat, err := f.svc.Categories.Create(f.ctx, accA, owner, dto.CategoryCreate{ProductName: "Suplementos"}, image("cat.png"))
	require.NoError(t, err)
	assert.Contains(t, cat.ProductImg, objectstore.FolderCategories+"/")

	brand, err := f.svc.Brands.Create(f.ctx, accA, owner, dto.BrandCreate{BrandName: "Acme"}, nil)
	require.NoError(t, err)
	assert.Empty(t, brand.Image)

	p, err := f.svc.Products.Create(f.ctx, accA, owner, dto.ProductCreate{
		ProductCategoryID: cat.ID, BrandID: brand.ID, ProductName: "  Whey  Protein 1KG ", Price: ptr(49.9),
	}, image("whey.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "whey-protein-1kg", p.Slug)
	first := p.Image

	// update sin imagen conserva la URL; el rename recalcula el slug
	up, err := f.svc.Products.Update(f.ctx, accA, p.ID, dto.ProductUpdate{ProductName: ptr("Whey Iso")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "whey-iso", up.Slug)
	assert.Equal(t, first, up.Image)

	// con imagen nueva se borra la anterior
	up, err = f.svc.Products.Update(f.ctx, accA, p.ID, dto.ProductUpdate{}, image("new.png"))
	require.NoError(t, err)
	assert.NotEqual(t, first, up.Image)
	assert.Contains(t, f.up.deleted, first)

	list, err := f.svc.Products.List(f.ctx, accA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Suplementos", list[0].Category.ProductName)
	require.NotNil(t, list[0].Brand)
	assert.Equal(t, "Acme", list[0].Brand.BrandName)

	_, err = f.svc.Products.Create(f.ctx, accB, owner, dto.ProductCreate{
		ProductCategoryID: cat.ID, BrandID: brand.ID, ProductName: "X", Price: ptr(1.0),
	}, nil)
	assert.ErrorIs(t, err, httperrors.ErrNotFound)
}

func TestImage_Rejected(t *testing.T) {
	f := newFixture(t)
	gif := &Image{Filename: "a.gif", ContentType: "image/gif", Size: 10, Body: strings.NewReader("GIF89a")}
	_, err := f.svc.Brands.Create(f.ctx, accA, owner, dto.BrandCreate{BrandName: "Acme"}, gif)
	assert.ErrorIs(t, err, objectstore.ErrInvalidFile)

	f.up.fail = true
	_, err = f.svc.Brands.Create(f.ctx, accA, owner, dto.BrandCreate{BrandName: "Acme"}, image("a.png"))
	assert.ErrorIs(t, err, httperrors.ErrUploadFailed)

	list, _ := f.svc.Brands.List(f.ctx, accA)
	assert.Empty(t, list)
}

type brokenBrands struct{ repository.BrandRepository }

func (brokenBrands) Create(context.Context, repository.Brand) (*repository.Brand, error) {
	return nil, errors.New("db down")
}

type brokenStore struct{ *memory.Store }

func (b brokenStore) Brands() repository.BrandRepository { return brokenBrands{b.Store.Brands()} }

func TestImage_CompensatedWhenWriteFails(t *testing.T) {
	up := &fakeUploader{}
	svc := New(Deps{Store: brokenStore{memory.New()}, Uploader: up})

	_, err := svc.Brands.Create(context.Background(), accA, owner, dto.BrandCreate{BrandName: "Acme"}, image("a.png"))
	require.Error(t, err)
	require.Len(t, up.uploaded, 1)
	assert.Equal(t, up.uploaded, up.deleted)
}

func TestPlan_DuplicateName(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	f.plan(accA, b.ID, "Mensual", "MONTHLY", 1, 100)
	_, err := f.svc.Plans.Create(f.ctx, accA, owner, dto.PlanCreate{BranchID: b.ID, PlanName: "Mensual", PlanType: "MONTHLY", Duration: 1, Price: ptr(90.0)})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)

	p2 := f.plan(accA, b.ID, "Trimestral", "MONTHLY", 3, 250)
	_, err = f.svc.Plans.Update(f.ctx, accA, p2.ID, dto.PlanUpdate{PlanName: ptr("Mensual")})
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)
}

func errOf(_ any, err error) error { return err }

func count[T any](l []T, err error) (int, error) { return len(l), err }

func assertNotFound(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err, msg)
	assert.Equal(t, http.StatusNotFound, httperrors.FromError(err).HTTPStatus, msg)
}

// Cada entidad de accA es invisible para accB: Get/Update/Delete dan 404 y
// List sale vacío. Al final todo sigue existiendo en accA.
func TestTenantIsolation_AllEntities(t *testing.T) {
	f := newFixture(t)
	b := f.branch(accA, "a@gym.test")
	m := f.member(accA, b.ID, "+5493415550001", repository.GenderMale)
	tr := f.trainer(accA, b.ID, "leo@gym.test", "+5493415550002")
	p := f.plan(accA, b.ID, "Mensual", "MONTHLY", 1, 30)
	s, err := f.subscribe(accA, b.ID, m.ID, p.ID, 30)
	require.NoError(t, err)
	a, err := f.svc.Assignments.Assign(f.ctx, accA, owner, dto.AssignmentCreate{BranchID: b.ID, MemberID: m.ID, TrainerID: tr.ID})
	require.NoError(t, err)
	hr, err := f.svc.HealthReports.Create(f.ctx, accA, owner, dto.HealthReportCreate{BranchID: b.ID, MemberID: m.ID, Metrics: dto.Metrics{Weight: ptr(80.0)}})
	require.NoError(t, err)
	cat, err := f.svc.Categories.Create(f.ctx, accA, owner, dto.CategoryCreate{ProductName: "Suplementos"}, nil)
	require.NoError(t, err)
	br, err := f.svc.Brands.Create(f.ctx, accA, owner, dto.BrandCreate{BrandName: "Acme"}, nil)
	require.NoError(t, err)
	pr, err := f.svc.Products.Create(f.ctx, accA, owner, dto.ProductCreate{ProductCategoryID: cat.ID, BrandID: br.ID, ProductName: "Whey", Price: ptr(10.0)}, nil)
	require.NoError(t, err)

	name := ptr("X")
	ctx := f.ctx
	cases := []struct {
		name   string
		get    func(acc string) error
		list   func(acc string) (int, error)
		update func(acc string) error
		del    func(acc string) error
	}{
		{"branch",
			func(acc string) error { return errOf(f.svc.Branches.Get(ctx, acc, b.ID)) },
			func(acc string) (int, error) { return count[repository.Branch](f.svc.Branches.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Branches.Update(ctx, acc, b.ID, dto.BranchUpdate{Name: name})) },
			func(acc string) error { return f.svc.Branches.Delete(ctx, acc, b.ID) }},
		{"trainer",
			func(acc string) error { return errOf(f.svc.Trainers.Get(ctx, acc, tr.ID)) },
			func(acc string) (int, error) { return count[repository.Trainer](f.svc.Trainers.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Trainers.Update(ctx, acc, tr.ID, dto.TrainerUpdate{Name: name})) },
			func(acc string) error { return f.svc.Trainers.Delete(ctx, acc, tr.ID) }},
		{"member",
			func(acc string) error { return errOf(f.svc.Members.Get(ctx, acc, m.ID)) },
			func(acc string) (int, error) { return count[repository.Member](f.svc.Members.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Members.Update(ctx, acc, m.ID, dto.MemberUpdate{Name: name})) },
			func(acc string) error { return f.svc.Members.Delete(ctx, acc, m.ID) }},
		{"plan",
			func(acc string) error { return errOf(f.svc.Plans.Get(ctx, acc, p.ID)) },
			func(acc string) (int, error) { return count[repository.MembershipPlan](f.svc.Plans.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Plans.Update(ctx, acc, p.ID, dto.PlanUpdate{PlanName: name})) },
			func(acc string) error { return f.svc.Plans.Delete(ctx, acc, p.ID) }},
		{"category",
			func(acc string) error { return errOf(f.svc.Categories.Get(ctx, acc, cat.ID)) },
			func(acc string) (int, error) { return count[repository.ProductCategory](f.svc.Categories.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Categories.Update(ctx, acc, cat.ID, dto.CategoryUpdate{ProductName: name}, nil)) },
			func(acc string) error { return f.svc.Categories.Delete(ctx, acc, cat.ID) }},
		{"brand",
			func(acc string) error { return errOf(f.svc.Brands.Get(ctx, acc, br.ID)) },
			func(acc string) (int, error) { return count[repository.Brand](f.svc.Brands.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Brands.Update(ctx, acc, br.ID, dto.BrandUpdate{BrandName: name}, nil)) },
			func(acc string) error { return f.svc.Brands.Delete(ctx, acc, br.ID) }},
		{"product",
			func(acc string) error { return errOf(f.svc.Products.Get(ctx, acc, pr.ID)) },
			func(acc string) (int, error) { return count[repository.Product](f.svc.Products.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Products.Update(ctx, acc, pr.ID, dto.ProductUpdate{ProductName: name}, nil)) },
			func(acc string) error { return f.svc.Products.Delete(ctx, acc, pr.ID) }},
		{"subscription",
			func(acc string) error { return errOf(f.svc.Subscriptions.Get(ctx, acc, s.ID)) },
			func(acc string) (int, error) { return count[repository.Subscription](f.svc.Subscriptions.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Subscriptions.Update(ctx, acc, s.ID, dto.SubscriptionUpdate{PaymentMode: ptr("UPI")})) },
			func(acc string) error { return f.svc.Subscriptions.Delete(ctx, acc, s.ID) }},
		{"assignment",
			func(acc string) error { return errOf(f.svc.Assignments.Current(ctx, acc, m.ID)) },
			func(acc string) (int, error) { return count[repository.Assignment](f.svc.Assignments.List(ctx, acc)) },
			func(acc string) error { return errOf(f.svc.Assignments.Update(ctx, acc, a.ID, dto.AssignmentUpdate{Notes: ptr("x")})) },
			func(acc string) error { return f.svc.Assignments.Delete(ctx, acc, a.ID) }},
		{"health report",
			func(acc string) error { return errOf(f.svc.HealthReports.Period(ctx, acc, hr.ID)) },
			func(acc string) (int, error) {
				l, err := f.svc.HealthReports.ListByMember(ctx, acc, m.ID)
				if errors.Is(err, repository.ErrNotFound) {
					return 0, nil
				}
				return len(l), err
			},
			func(acc string) error { return errOf(f.svc.HealthReports.Update(ctx, acc, hr.ID, dto.HealthReportUpdate{Metrics: dto.Metrics{Weight: ptr(90.0)}})) },
			func(acc string) error { return f.svc.HealthReports.Delete(ctx, acc, hr.ID) }},
	}
	for _, tc := range cases {
		assertNotFound(t, tc.get(accB), tc.name+" get")
		n, err := tc.list(accB)
		require.NoError(t, err, tc.name+" list")
		assert.Zero(t, n, tc.name+" list")
		assertNotFound(t, tc.update(accB), tc.name+" update")
		assertNotFound(t, tc.del(accB), tc.name+" delete")

		assert.NoError(t, tc.get(accA), tc.name+" still in owner tenant")
		n, err = tc.list(accA)
		require.NoError(t, err)
		assert.Equal(t, 1, n, tc.name+" owner list")
	}
}

func TestProduct_SlugCollision(t *testing.T) {
	f := newFixture(t)
	cat, err := f.svc.Categories.Create(f.ctx, accA, owner, dto.CategoryCreate{ProductName: "Suplementos"}, nil)
	require.NoError(t, err)
	brand, err := f.svc.Brands.Create(f.ctx, accA, owner, dto.BrandCreate{BrandName: "Acme"}, nil)
	require.NoError(t, err)
	create := func(name string, img *Image) (*repository.Product, error) {
		return f.svc.Products.Create(f.ctx, accA, owner, dto.ProductCreate{
			ProductCategoryID: cat.ID, BrandID: brand.ID, ProductName: name, Price: ptr(10.0),
		}, img)
	}

	first, err := create("Whey Protein", nil)
	require.NoError(t, err)
	_, err = create("Whey  Protein", image("whey.png"))
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)
	assert.Empty(t, f.up.uploaded)

	other, err := create("Creatina", nil)
	require.NoError(t, err)
	_, err = f.svc.Products.Update(f.ctx, accA, other.ID, dto.ProductUpdate{ProductName: ptr("whey   protein")}, nil)
	assert.ErrorIs(t, err, httperrors.ErrAlreadyExists)

	// renombrar al mismo slug propio está permitido
	up, err := f.svc.Products.Update(f.ctx, accA, first.ID, dto.ProductUpdate{ProductName: ptr("Whey  Protein")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "whey-protein", up.Slug)
}
