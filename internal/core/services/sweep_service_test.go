package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/anonballot/internal/core/domain"
)

func TestSweepExpired(t *testing.T) {
	credentials := memory.NewCredentialRepository()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, credentials.Insert(ctx, &domain.Credential{TokenHash: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, credentials.Insert(ctx, &domain.Credential{TokenHash: "fresh", ExpiresAt: now.Add(time.Minute)}))

	svc := NewSweepService(credentials, time.Second, zaptest.NewLogger(t)).(*sweepService)
	svc.now = func() time.Time { return now }

	deleted, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 1, credentials.Len())
}

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) SweepExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestRunSweeper(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, sweeper, 5*time.Millisecond, zaptest.NewLogger(t))
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRunSweeperDisabled(t *testing.T) {
	sweeper := &countingSweeper{}
	RunSweeper(context.Background(), sweeper, 0, zaptest.NewLogger(t))
	assert.Zero(t, sweeper.calls.Load())
}
