package contracts

import (
	"context"
	"time"
)

// LockRetryPolicy paces repeated acquisition attempts of a contended lock.
type LockRetryPolicy struct {
	Attempts int
	Interval time.Duration
}

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	// Acquire retries TryLock until it wins, the policy runs out or ctx ends,
	// and returns the owner token.
	Acquire(ctx context.Context, key string, expiration time.Duration, policy LockRetryPolicy) (string, error)
	Unlock(ctx context.Context, key, lockValue string) error
	Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error
}
