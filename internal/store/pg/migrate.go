package pg

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration es un par up/down con la misma versión.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

var migrationFile = regexp.MustCompile(`^(\d+)_(.+)_(up|down)\.sql$`)

// ParseMigrations lee {version}_{name}_{up|down}.sql del FS, ordenadas por versión.
func ParseMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations: read dir: %w", err)
	}
	byVersion := map[int]*Migration{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := migrationFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("migrations: read %s: %w", e.Name(), err)
		}
		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: m[2]}
			byVersion[version] = mig
		}
		if m[3] == "up" {
			mig.Up = string(body)
		} else {
			mig.Down = string(body)
		}
	}
	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrator aplica migraciones registrándolas en _migrations.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
}

func NewMigrator(pool *pgxpool.Pool, fsys fs.FS) (*Migrator, error) {
	migs, err := ParseMigrations(fsys)
	if err != nil {
		return nil, err
	}
	return &Migrator{pool: pool, migrations: migs}, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (m *Migrator) applied(ctx context.Context) (map[int]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT version FROM _migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, err
	}
	out := make(map[int]bool, len(versions))
	for _, v := range versions {
		out[v] = true
	}
	return out, nil
}

// Up aplica hasta steps migraciones pendientes (0 = todas). Cada una corre en
// su propia transacción. Retorna las versiones aplicadas.
func (m *Migrator) Up(ctx context.Context, steps int) ([]int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, fmt.Errorf("migrations: ensure table: %w", err)
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: applied: %w", err)
	}
	var out []int
	for _, mig := range m.migrations {
		if done[mig.Version] {
			continue
		}
		if steps > 0 && len(out) >= steps {
			break
		}
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.Up); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO _migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return out, fmt.Errorf("migrations: apply %04d_%s: %w", mig.Version, mig.Name, err)
		}
		out = append(out, mig.Version)
	}
	return out, nil
}

// Down revierte las últimas steps migraciones aplicadas (0 = una).
func (m *Migrator) Down(ctx context.Context, steps int) ([]int, error) {
	if steps <= 0 {
		steps = 1
	}
	if err := m.ensureTable(ctx); err != nil {
		return nil, fmt.Errorf("migrations: ensure table: %w", err)
	}
	done, err := m.applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations: applied: %w", err)
	}
	var out []int
	for i := len(m.migrations) - 1; i >= 0 && len(out) < steps; i-- {
		mig := m.migrations[i]
		if !done[mig.Version] {
			continue
		}
		if mig.Down == "" {
			return out, fmt.Errorf("migrations: %04d_%s has no down script", mig.Version, mig.Name)
		}
		err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.Down); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `DELETE FROM _migrations WHERE version = $1`, mig.Version)
			return err
		})
		if err != nil {
			return out, fmt.Errorf("migrations: revert %04d_%s: %w", mig.Version, mig.Name, err)
		}
		out = append(out, mig.Version)
	}
	return out, nil
}
