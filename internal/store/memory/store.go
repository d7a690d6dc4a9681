// Package memory implementa repository.Store en memoria. Se usa en tests y en
// desarrollo (storage.driver=memory).
//
// Todas las operaciones se serializan con un único mutex. InTx trabaja sobre
// una copia del estado y la publica solo si fn no retorna error.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// Store es el adapter en memoria.
type Store struct {
	repos
	mu sync.Mutex
}

// db es el estado compartido por los repos de un alcance. Dentro de una
// transacción locked es false: el mutex ya lo tiene InTx.
type db struct {
	mu     *sync.Mutex
	locked bool
	st     *state
}

func (d *db) lock() func() {
	if !d.locked {
		return func() {}
	}
	d.mu.Lock()
	return d.mu.Unlock
}

// New crea un store vacío.
func New() *Store {
	s := &Store{}
	s.d = &db{mu: &s.mu, locked: true, st: newState()}
	return s
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Driver() string { return "memory" }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close() {}

func (s *Store) InTx(ctx context.Context, fn func(tx repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.d.st.clone()
	if err := fn(repos{d: &db{st: clone}}); err != nil {
		return err
	}
	s.d.st = clone
	return nil
}

// repos implementa repository.Repositories sobre un db.
type repos struct{ d *db }

func (r repos) Users() repository.UserRepository { return userRepo{r.d} }
func (r repos) Tokens() repository.TokenRepository { return tokenRepo{r.d} }
func (r repos) Accounts() repository.AccountRepository { return accountRepo{r.d} }
func (r repos) Branches() repository.BranchRepository { return branchRepo{r.d} }
func (r repos) Trainers() repository.TrainerRepository { return trainerRepo{r.d} }
func (r repos) Members() repository.MemberRepository { return memberRepo{r.d} }
func (r repos) Plans() repository.PlanRepository { return planRepo{r.d} }
func (r repos) Categories() repository.CategoryRepository { return categoryRepo{r.d} }
func (r repos) Brands() repository.BrandRepository { return brandRepo{r.d} }
func (r repos) Products() repository.ProductRepository { return productRepo{r.d} }
func (r repos) Subscriptions() repository.SubscriptionRepository { return subscriptionRepo{r.d} }
func (r repos) Assignments() repository.AssignmentRepository { return assignmentRepo{r.d} }
func (r repos) HealthReports() repository.HealthReportRepository { return healthReportRepo{r.d} }
