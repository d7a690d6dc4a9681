// Package pg implementa repository.Store sobre PostgreSQL con pgxpool.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/store"
)

func init() {
	store.RegisterAdapter(postgresAdapter{})
}

type postgresAdapter struct{}

func (postgresAdapter) Name() string { return "postgres" }

func (postgresAdapter) Open(ctx context.Context, cfg store.Config) (repository.Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// NewPool crea y verifica el pool de conexiones.
func NewPool(ctx context.Context, cfg store.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}
	poolCfg.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.MinConns = 2
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}
	return pool, nil
}

// querier es lo común entre *pgxpool.Pool y pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store es el adapter PostgreSQL.
type Store struct {
	repos
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// New envuelve un pool existente.
func New(pool *pgxpool.Pool) *Store {
	return &Store{repos: repos{q: pool}, pool: pool}
}

func (s *Store) Driver() string { return "postgres" }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() { s.pool.Close() }

// Pool expone el pool para migraciones.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) InTx(ctx context.Context, fn func(tx repository.Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repos{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pg: commit: %w", mapErr(err))
	}
	return nil
}

type repos struct{ q querier }

func (r repos) Users() repository.UserRepository { return userRepo{r.q} }
func (r repos) Tokens() repository.TokenRepository { return tokenRepo{r.q} }
func (r repos) Accounts() repository.AccountRepository { return accountRepo{r.q} }
func (r repos) Branches() repository.BranchRepository { return branchRepo{r.q} }
func (r repos) Trainers() repository.TrainerRepository { return trainerRepo{r.q} }
func (r repos) Members() repository.MemberRepository { return memberRepo{r.q} }
func (r repos) Plans() repository.PlanRepository { return planRepo{r.q} }
func (r repos) Categories() repository.CategoryRepository { return categoryRepo{r.q} }
func (r repos) Brands() repository.BrandRepository { return brandRepo{r.q} }
func (r repos) Products() repository.ProductRepository { return productRepo{r.q} }
func (r repos) Subscriptions() repository.SubscriptionRepository { return subscriptionRepo{r.q} }
func (r repos) Assignments() repository.AssignmentRepository { return assignmentRepo{r.q} }
func (r repos) HealthReports() repository.HealthReportRepository { return healthReportRepo{r.q} }

// mapErr traduce errores de pgx a los sentinels de repository.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
		case "22P02", "23514": // invalid_text_representation (uuid), check_violation
			return fmt.Errorf("%w: %s", repository.ErrInvalidInput, pgErr.Message)
		case "53300", "57P01": // too_many_connections, admin_shutdown
			return fmt.Errorf("%w: %s", repository.ErrUnavailable, pgErr.Message)
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return err
}

// wrap agrega contexto sin perder el sentinel.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("pg: %s: %w", op, mapErr(err))
}

// newID completa el ID si viene vacío.
func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// validID evita round-trips con IDs que no son UUID: se tratan como inexistentes.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nowUTC() time.Time { return time.Now().UTC() }

// affected convierte 0 filas afectadas en ErrNotFound.
func affected(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
