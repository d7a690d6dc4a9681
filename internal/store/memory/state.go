package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

type state struct {
	users         map[string]repository.User
	tokens        map[string]repository.AuthToken // por hash
	accounts      map[string]repository.Account
	branches      map[string]repository.Branch
	trainers      map[string]repository.Trainer
	members       map[string]repository.Member
	plans         map[string]repository.MembershipPlan
	categories    map[string]repository.ProductCategory
	brands        map[string]repository.Brand
	products      map[string]repository.Product
	subscriptions map[string]repository.Subscription
	assignments   map[string]repository.Assignment
	reports       map[string]repository.HealthReport

	// last garantiza timestamps estrictamente crecientes para ordenar.
	last time.Time
}

func newState() *state {
	return &state{
		users:         map[string]repository.User{},
		tokens:        map[string]repository.AuthToken{},
		accounts:      map[string]repository.Account{},
		branches:      map[string]repository.Branch{},
		trainers:      map[string]repository.Trainer{},
		members:       map[string]repository.Member{},
		plans:         map[string]repository.MembershipPlan{},
		categories:    map[string]repository.ProductCategory{},
		brands:        map[string]repository.Brand{},
		products:      map[string]repository.Product{},
		subscriptions: map[string]repository.Subscription{},
		assignments:   map[string]repository.Assignment{},
		reports:       map[string]repository.HealthReport{},
	}
}

// clone copia el state completo, registros incluidos; InTx descarta la copia
// si fn falla.
func (s *state) clone() *state {
	return &state{
		users:         deepClone(s.users),
		tokens:        deepClone(s.tokens),
		accounts:      deepClone(s.accounts),
		branches:      deepClone(s.branches),
		trainers:      deepClone(s.trainers),
		members:       deepClone(s.members),
		plans:         deepClone(s.plans),
		categories:    deepClone(s.categories),
		brands:        deepClone(s.brands),
		products:      deepClone(s.products),
		subscriptions: deepClone(s.subscriptions),
		assignments:   deepClone(s.assignments),
		reports:       deepClone(s.reports),
		last:          s.last,
	}
}

func (s *state) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// stamp completa ID y timestamps de un registro nuevo.
func (s *state) stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// scoped filtra los registros del tenant y los ordena por creación descendente.
func scoped[T any](m map[string]T, accountID string, account func(T) string, created func(T) time.Time) []T {
	out := make([]T, 0)
	for _, v := range m {
		if account(v) == accountID {
			out = append(out, detach(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return created(out[i]).After(created(out[j])) })
	return out
}

// get retorna el registro si existe y pertenece al tenant.
func get[T any](m map[string]T, accountID, id string, account func(T) string) (T, bool) {
	v, ok := m[id]
	if !ok || account(v) != accountID {
		var zero T
		return zero, false
	}
	return detach(v), true
}

// exists reporta si algún registro del tenant distinto de exceptID cumple match.
func exists[T any](m map[string]T, accountID, exceptID string, account func(T) string, id func(T) string, match func(T) bool) bool {
	for _, v := range m {
		if account(v) == accountID && id(v) != exceptID && match(v) {
			return true
		}
	}
	return false
}

func fold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func ptr[T any](v T) *T { return &v }
