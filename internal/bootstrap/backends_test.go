package bootstrap

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
)

func redisBackends(t *testing.T) (*Backends, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Queue.Backend = config.QueueBackendRedis
	cfg.Queue.Stream = "dining-requests"
	cfg.Queue.Group = "recommendation-workers"
	cfg.Queue.Consumer = "test"
	cfg.Database.Redis.Address = mr.Addr()

	b := &Backends{cfg: cfg, logger: logger.NewTestLogger(t)}
	t.Cleanup(b.Close)
	return b, mr
}

func TestBackends_RedisQueue(t *testing.T) {
	b, mr := redisBackends(t)
	ctx := context.Background()

	q, err := b.Queue(ctx)
	require.NoError(t, err)
	assert.IsType(t, &database.StreamQueue{}, q)
	assert.True(t, mr.Exists("dining-requests"))

	_, err = q.Send(ctx, "hello")
	require.NoError(t, err)
	msgs, err := q.Receive(ctx, 1, time.Minute, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Body)

	assert.NoError(t, b.Ready(ctx))
}

func TestBackends_RedisIsShared(t *testing.T) {
	b, _ := redisBackends(t)
	ctx := context.Background()

	first, err := b.Redis(ctx)
	require.NoError(t, err)
	second, err := b.Redis(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestBackends_ReadyReportsLostConnection(t *testing.T) {
	b, mr := redisBackends(t)
	ctx := context.Background()

	_, err := b.Redis(ctx)
	require.NoError(t, err)

	mr.Close()
	assert.Error(t, b.Ready(ctx))
}

func TestBackends_ReadyWithNothingOpened(t *testing.T) {
	b := &Backends{cfg: &config.Config{}, logger: logger.NewNoOpLogger()}
	assert.NoError(t, b.Ready(context.Background()))
}

func TestRetryWithBackoff(t *testing.T) {
	log := logger.NewNoOpLogger()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(func() error {
			calls++
			if calls < 3 {
				return stderrors.New("connection refused")
			}
			return nil
		}, 5, time.Millisecond, log, "test op")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		cause := stderrors.New("connection refused")
		err := RetryWithBackoff(func() error {
			calls++
			return cause
		}, 3, time.Millisecond, log, "test op")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "test op failed after 3 attempts")
		assert.Equal(t, 3, calls)
	})
}
