package locker

import (
	"context"
	"errors"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) ExpireIfEquals(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func TestLockService_Acquire(t *testing.T) {
	key := constvars.RedisKeyLedgerWriteLock
	policy := contracts.LockRetryPolicy{Attempts: 3, Interval: time.Millisecond}

	t.Run("wins after contention", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, key, mock.AnythingOfType("string"), 5*time.Second).Return(false, nil).Twice()
		repo.On("TrySetNX", mock.Anything, key, mock.AnythingOfType("string"), 5*time.Second).Return(true, nil).Once()

		svc := newLockService(repo, zap.NewNop())
		token, err := svc.Acquire(context.Background(), key, 5*time.Second, policy)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		repo.AssertNumberOfCalls(t, "TrySetNX", 3)
	})

	t.Run("exhausted attempts report a conflict", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, key, mock.Anything, mock.Anything).Return(false, nil)

		svc := newLockService(repo, zap.NewNop())
		token, err := svc.Acquire(context.Background(), key, time.Second, policy)

		assert.Empty(t, token)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		repo.AssertNumberOfCalls(t, "TrySetNX", 3)
	})

	t.Run("redis failure is returned as is", func(t *testing.T) {
		repo := new(MockRedisRepository)
		redisErr := exceptions.ErrRedisSet(errors.New("connection refused"))
		repo.On("TrySetNX", mock.Anything, key, mock.Anything, mock.Anything).Return(false, redisErr)

		svc := newLockService(repo, zap.NewNop())
		_, err := svc.Acquire(context.Background(), key, time.Second, policy)

		assert.ErrorIs(t, err, redisErr)
		repo.AssertNumberOfCalls(t, "TrySetNX", 1)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, key, mock.Anything, mock.Anything).Return(false, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := newLockService(repo, zap.NewNop())
		_, err := svc.Acquire(ctx, key, time.Second, contracts.LockRetryPolicy{Attempts: 5, Interval: time.Hour})

		require.Error(t, err)
		repo.AssertNotCalled(t, "TrySetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLockService_UnlockAndRefresh(t *testing.T) {
	key := constvars.RedisKeyLedgerAuditLeader

	repo := new(MockRedisRepository)
	repo.On("DeleteIfEquals", mock.Anything, key, "owner").Return(true, nil)
	repo.On("DeleteIfEquals", mock.Anything, key, "stranger").Return(false, nil)
	repo.On("ExpireIfEquals", mock.Anything, key, "owner", time.Minute).Return(true, nil)
	repo.On("ExpireIfEquals", mock.Anything, key, "stranger", time.Minute).Return(false, nil)

	svc := newLockService(repo, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, svc.Unlock(ctx, key, "owner"))
	assert.NoError(t, svc.Refresh(ctx, key, "owner", time.Minute))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, svc.Unlock(ctx, key, "stranger"), &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	require.ErrorAs(t, svc.Refresh(ctx, key, "stranger", time.Minute), &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
}
