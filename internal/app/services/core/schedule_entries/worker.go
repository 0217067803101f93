package schedule_entries

import (
	"context"
	"schedule-ledger-service/internal/app/config"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	auditLeaderTTL     = 2 * time.Minute
	fallbackAuditSpec  = "@daily"
	auditRequestPrefix = "AUDIT_"
)

// AuditWorker periodically checks the stored ledger for broken run
// numbering. Only the instance holding the leader lock runs a pass, and a
// pass never writes.
type AuditWorker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	usecase  contracts.ScheduleEntryUsecase
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewAuditWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, usecase contracts.ScheduleEntryUsecase) *AuditWorker {
	return &AuditWorker{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase}
}

func (w *AuditWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Ledger.AuditCronSpec
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("schedule_entries.AuditWorker invalid cron spec, falling back",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackAuditSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels an in-flight pass and waits for the scheduler to drain.
func (w *AuditWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.cron != nil {
			<-w.cron.Stop().Done()
		}
	})
}

func (w *AuditWorker) RunOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, auditRequestPrefix+utils.GenerateRequestID())

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyLedgerAuditLeader, auditLeaderTTL)
	if err != nil {
		w.log.Warn("schedule_entries.AuditWorker leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("schedule_entries.AuditWorker leader lock held by another instance")
		return
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyLedgerAuditLeader, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(auditLeaderTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyLedgerAuditLeader, token, auditLeaderTTL); err != nil {
					w.log.Warn("schedule_entries.AuditWorker failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	violations, err := w.usecase.AuditLedger(ctx)
	if err != nil {
		w.log.Warn("schedule_entries.AuditWorker audit failed", zap.Error(err))
		return
	}
	if len(violations) > 0 {
		w.log.Warn("schedule_entries.AuditWorker ledger has violations",
			zap.Int(constvars.LoggingViolationCountKey, len(violations)),
		)
	}
}
