// Package store abre el repository.Store configurado. Los adapters se
// registran en init() (ver internal/store/pg y internal/store/memory).
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// Config configura la conexión.
type Config struct {
	Driver          string // "postgres" | "memory"
	DSN             string
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// Adapter abre un Store para un driver.
type Adapter interface {
	Name() string
	Open(ctx context.Context, cfg Config) (repository.Store, error)
}

var (
	mu       sync.RWMutex
	adapters = map[string]Adapter{}
)

// RegisterAdapter registra un adapter. Llamar desde init().
func RegisterAdapter(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	adapters[a.Name()] = a
}

// Open abre el store del driver configurado.
func Open(ctx context.Context, cfg Config) (repository.Store, error) {
	mu.RLock()
	a, ok := adapters[cfg.Driver]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: unknown driver %q (available: %v)", cfg.Driver, Drivers())
	}
	return a.Open(ctx, cfg)
}

// Drivers lista los drivers registrados.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(adapters))
	for name := range adapters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
