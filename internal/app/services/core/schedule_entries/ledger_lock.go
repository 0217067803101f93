package schedule_entries

import (
	"context"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// withLedgerLock runs one read-compute-replace cycle while holding the
// ledger write lock. The store is replaced wholesale, so the lock covers
// every client.
func (uc *scheduleEntryUsecase) withLedgerLock(ctx context.Context, fn func() error) error {
	requestID := utils.GetRequestID(ctx)
	ledgerConfig := uc.InternalConfig.Ledger

	lockValue, err := uc.LockerService.Acquire(ctx, constvars.RedisKeyLedgerWriteLock, ledgerConfig.WriteLockTTL, contracts.LockRetryPolicy{
		Attempts: ledgerConfig.WriteLockAttempts,
		Interval: ledgerConfig.WriteLockRetryInterval,
	})
	if err != nil {
		uc.Log.Error("scheduleEntryUsecase.withLedgerLock error acquiring ledger lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	defer func() {
		// Release with a fresh context so a cancelled request still frees the ledger.
		releaseCtx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		if err := uc.LockerService.Unlock(releaseCtx, constvars.RedisKeyLedgerWriteLock, lockValue); err != nil {
			uc.Log.Warn("scheduleEntryUsecase.withLedgerLock error releasing ledger lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	return fn()
}
