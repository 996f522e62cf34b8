package sweeper

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	calls atomic.Int32
	count int
	err   error
}

func (f *fakeService) SweepExpired(context.Context, time.Time) (int, error) {
	f.calls.Add(1)
	return f.count, f.err
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func TestRunOnce_WithoutRedis(t *testing.T) {
	svc := &fakeService{count: 3}
	s := New(svc, nil, newTestLogger(), time.Second, "node-1")

	count, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestRunOnce_LeaseAllowsSingleInstance(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := &fakeService{count: 1}
	first := New(svc, client, newTestLogger(), time.Minute, "node-1")
	second := New(svc, client, newTestLogger(), time.Minute, "node-2")

	count, err := first.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = second.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, int32(1), svc.calls.Load())

	owner, err := mr.Get(leaseKey)
	require.NoError(t, err)
	assert.Equal(t, "node-1", owner)

	// после истечения аренды второй экземпляр может её взять
	mr.FastForward(time.Minute)
	_, err = second.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestRunOnce_RedisDownStillSweeps(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	svc := &fakeService{count: 2}
	s := New(svc, client, newTestLogger(), time.Second, "node-1")

	count, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRunOnce_ServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("db is down")}
	s := New(svc, nil, newTestLogger(), time.Second, "node-1")

	_, err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is down")
}

func TestStart_RunsOnTicker(t *testing.T) {
	svc := &fakeService{}
	s := New(svc, nil, newTestLogger(), 10*time.Millisecond, "node-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}
