package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_Window(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	r, err := l.Allow(ctx, "1.2.3.4:/v1/auth/login")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
	assert.EqualValues(t, 1, r.Remaining)

	r, _ = l.Allow(ctx, "1.2.3.4:/v1/auth/login")
	assert.True(t, r.Allowed)
	assert.EqualValues(t, 0, r.Remaining)

	r, _ = l.Allow(ctx, "1.2.3.4:/v1/auth/login")
	assert.False(t, r.Allowed)
	assert.Equal(t, 50*time.Second, r.RetryAfter)

	// otra clave no comparte contador
	r, _ = l.Allow(ctx, "5.6.7.8:/v1/auth/login")
	assert.True(t, r.Allowed)

	// ventana siguiente
	now = now.Add(time.Minute)
	r, _ = l.Allow(ctx, "1.2.3.4:/v1/auth/login")
	assert.True(t, r.Allowed)
	assert.EqualValues(t, 1, r.CurrentHits)
}

func TestResult_RetryAfterFallback(t *testing.T) {
	r := result(5, 2, -1, 30*time.Second)
	assert.False(t, r.Allowed)
	assert.Equal(t, 30*time.Second, r.RetryAfter)
}

func TestMemoryLimiter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryLimiter(1, time.Second).Allow(ctx, "k")
	assert.Error(t, err)
}
