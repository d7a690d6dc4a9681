package rate

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter es la misma ventana fija pero en proceso (una sola réplica).
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu  sync.Mutex
	c   *gocache.Cache
	now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		c:      gocache.New(window, 2*window),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	now := l.now().UTC()
	start := now.Truncate(l.Window)
	k := windowKey("", key, now, l.Window)

	l.mu.Lock()
	defer l.mu.Unlock()
	// Add falla si la key ya existe: el TTL queda fijado por el primer hit
	_ = l.c.Add(k, int64(0), start.Add(l.Window).Sub(now))
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		return Result{}, err
	}
	return result(hits, l.Max, start.Add(l.Window).Sub(now), l.Window), nil
}
