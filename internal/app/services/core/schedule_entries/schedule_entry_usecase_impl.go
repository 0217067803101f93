package schedule_entries

import (
	"context"
	"errors"
	"schedule-ledger-service/internal/app/config"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/dto/responses"
	"schedule-ledger-service/internal/pkg/exceptions"
	"schedule-ledger-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type scheduleEntryUsecase struct {
	ScheduleEntryRepository contracts.ScheduleEntryRepository
	LockerService           contracts.LockerService
	EventPublisher          contracts.LedgerEventPublisher
	SnapshotArchive         contracts.LedgerSnapshotArchive
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	scheduleEntryUsecaseInstance contracts.ScheduleEntryUsecase
	onceScheduleEntryUsecase     sync.Once
)

func NewScheduleEntryUsecase(
	scheduleEntryRepository contracts.ScheduleEntryRepository,
	lockerService contracts.LockerService,
	eventPublisher contracts.LedgerEventPublisher,
	snapshotArchive contracts.LedgerSnapshotArchive,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleEntryUsecase {
	onceScheduleEntryUsecase.Do(func() {
		scheduleEntryUsecaseInstance = newScheduleEntryUsecase(
			scheduleEntryRepository,
			lockerService,
			eventPublisher,
			snapshotArchive,
			internalConfig,
			logger,
		)
	})
	return scheduleEntryUsecaseInstance
}

func newScheduleEntryUsecase(
	scheduleEntryRepository contracts.ScheduleEntryRepository,
	lockerService contracts.LockerService,
	eventPublisher contracts.LedgerEventPublisher,
	snapshotArchive contracts.LedgerSnapshotArchive,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *scheduleEntryUsecase {
	return &scheduleEntryUsecase{
		ScheduleEntryRepository: scheduleEntryRepository,
		LockerService:           lockerService,
		EventPublisher:          eventPublisher,
		SnapshotArchive:         snapshotArchive,
		InternalConfig:          internalConfig,
		Log:                     logger,
	}
}

func (uc *scheduleEntryUsecase) CreateEntry(ctx context.Context, request *requests.CreateScheduleEntry) (*responses.ScheduleEntry, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleEntryUsecase.CreateEntry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, request.ClientID),
	)

	draft, billing, err := utils.MapCreateScheduleEntryRequestToModel(request)
	if err != nil {
		return nil, err
	}
	draft.ID = utils.GenerateEntryID()

	var created models.ScheduleEntry
	var state models.RunState
	err = uc.withLedgerLock(ctx, func() error {
		snapshot, err := uc.ScheduleEntryRepository.FindAll(ctx)
		if err != nil {
			return err
		}

		created, state, err = BuildEntry(snapshot, NewEntryDraft{Entry: draft, Billing: billing})
		if err != nil {
			return mapLedgerError(err, draft.ID)
		}

		return uc.ScheduleEntryRepository.ReplaceAll(ctx, append(snapshot, created))
	})
	if err != nil {
		uc.Log.Error("scheduleEntryUsecase.CreateEntry error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, models.NewLedgerEvent(utils.GenerateEventID(), constvars.EventScheduleEntryCreated, requestID, []models.ScheduleEntry{created}))
	uc.Log.Info("scheduleEntryUsecase.CreateEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, created.ID),
		zap.String(constvars.LoggingRunStateKey, string(state.Kind)),
	)

	response := created.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleEntryUsecase) UpdateEntry(ctx context.Context, entryID string, request *requests.UpdateScheduleEntry) (*responses.UpdatedEntrySet, error) {
	uc.Log.Info("scheduleEntryUsecase.UpdateEntry called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)
	return uc.editEntry(ctx, entryID, func(entry *models.ScheduleEntry) error {
		return utils.ApplyUpdateScheduleEntryRequest(entry, request)
	})
}

func (uc *scheduleEntryUsecase) MarkPaidAndActivate(ctx context.Context, entryID string, request *requests.MarkScheduleEntryPaid) (*responses.UpdatedEntrySet, error) {
	uc.Log.Info("scheduleEntryUsecase.MarkPaidAndActivate called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)
	return uc.editEntry(ctx, entryID, func(entry *models.ScheduleEntry) error {
		return utils.ApplyMarkScheduleEntryPaidRequest(entry, request)
	})
}

// editEntry applies patch to the stored entry and commits the outcome,
// renumbering the client's entries when the edit activates a first run.
func (uc *scheduleEntryUsecase) editEntry(ctx context.Context, entryID string, patch func(entry *models.ScheduleEntry) error) (*responses.UpdatedEntrySet, error) {
	requestID := utils.GetRequestID(ctx)

	var outcome EditOutcome
	var snapshotName string
	err := uc.withLedgerLock(ctx, func() error {
		snapshot, err := uc.ScheduleEntryRepository.FindAll(ctx)
		if err != nil {
			return err
		}

		index := findEntryIndex(snapshot, entryID)
		if index < 0 {
			return exceptions.ErrScheduleEntryNotFound(nil, entryID)
		}
		edited := snapshot[index].Clone()
		if err := patch(&edited); err != nil {
			return err
		}

		outcome, err = ApplyEdit(snapshot, edited)
		if err != nil {
			return mapLedgerError(err, entryID)
		}

		if outcome.Activated {
			snapshotName, err = uc.SnapshotArchive.Archive(ctx, constvars.SnapshotReasonActivation, snapshot)
			if err != nil {
				return err
			}
		}
		return uc.ScheduleEntryRepository.ReplaceAll(ctx, outcome.Snapshot)
	})
	if err != nil {
		uc.Log.Error("scheduleEntryUsecase.editEntry error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntryIDKey, entryID),
			zap.Error(err),
		)
		return nil, err
	}

	eventType := constvars.EventScheduleEntryUpdated
	if outcome.Activated {
		eventType = constvars.EventScheduleEntryActivated
	}
	touched := append([]models.ScheduleEntry{outcome.Entry}, outcome.Renumbered...)
	event := models.NewLedgerEvent(utils.GenerateEventID(), eventType, requestID, touched)
	event.ClientID = outcome.Entry.ClientID
	event.Snapshot = snapshotName
	uc.publish(ctx, event)

	uc.Log.Info("scheduleEntryUsecase.editEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
		zap.String(constvars.LoggingEventTypeKey, eventType),
		zap.Int(constvars.LoggingTouchedCountKey, len(outcome.Renumbered)),
	)

	response := &responses.UpdatedEntrySet{
		Entry:      outcome.Entry.ConvertIntoResponse(),
		Activated:  outcome.Activated,
		Renumbered: make([]responses.ScheduleEntry, 0, len(outcome.Renumbered)),
	}
	for _, entry := range outcome.Renumbered {
		response.Renumbered = append(response.Renumbered, entry.ConvertIntoResponse())
	}
	return response, nil
}

func (uc *scheduleEntryUsecase) DeleteEntry(ctx context.Context, entryID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleEntryUsecase.DeleteEntry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)

	var deleted *models.ScheduleEntry
	err := uc.withLedgerLock(ctx, func() error {
		entry, err := uc.ScheduleEntryRepository.FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return exceptions.ErrScheduleEntryNotFound(nil, entryID)
		}

		removed, err := uc.ScheduleEntryRepository.DeleteByID(ctx, entryID)
		if err != nil {
			return err
		}
		if !removed {
			return exceptions.ErrScheduleEntryNotFound(nil, entryID)
		}
		deleted = entry
		return nil
	})
	if err != nil {
		uc.Log.Error("scheduleEntryUsecase.DeleteEntry error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	event := models.NewLedgerEvent(utils.GenerateEventID(), constvars.EventScheduleEntryDeleted, requestID, []models.ScheduleEntry{*deleted})
	event.ClientID = deleted.ClientID
	uc.publish(ctx, event)

	uc.Log.Info("scheduleEntryUsecase.DeleteEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)
	return nil
}

func (uc *scheduleEntryUsecase) FindByID(ctx context.Context, entryID string) (*responses.ScheduleEntry, error) {
	entry, err := uc.ScheduleEntryRepository.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, exceptions.ErrScheduleEntryNotFound(nil, entryID)
	}

	response := entry.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleEntryUsecase) FindWeek(ctx context.Context, request *requests.FindScheduleWeek) (*responses.ScheduleWeek, error) {
	day, err := models.ParseDate(request.WeekStart)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamWeekStart)
	}

	from, to := WeekBounds(day, uc.InternalConfig.Ledger.WeekStartsOn)
	entries, err := uc.ScheduleEntryRepository.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	SortEntries(entries)

	return &responses.ScheduleWeek{
		WeekStart: from.String(),
		WeekEnd:   to.AddDays(-1).String(),
		Entries:   convertEntries(entries),
	}, nil
}

func (uc *scheduleEntryUsecase) FindClientEntries(ctx context.Context, clientID string) ([]responses.ScheduleEntry, error) {
	entries, err := uc.ScheduleEntryRepository.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	SortEntries(entries)
	return convertEntries(entries), nil
}

func (uc *scheduleEntryUsecase) ResolveSubscriptionRun(ctx context.Context, request *requests.FindSubscriptionRun) (*responses.SubscriptionRun, error) {
	date, err := models.ParseDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamDate)
	}
	clock, err := models.ParseClock(request.Time)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamTime)
	}

	entries, err := uc.ScheduleEntryRepository.FindByClientID(ctx, request.ClientID)
	if err != nil {
		return nil, err
	}

	state := ResolveRunState(entries, request.ClientID, models.SortKey{Date: date, Time: clock})
	response := state.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleEntryUsecase) ProjectWeek(ctx context.Context, request *requests.ProjectScheduleWeek) (*responses.ProjectedWeek, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("scheduleEntryUsecase.ProjectWeek called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekStartKey, request.WeekStart),
	)

	weekStart, err := models.ParseDate(request.WeekStart)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamWeekStart)
	}

	var outcome ProjectionOutcome
	var snapshotName string
	err = uc.withLedgerLock(ctx, func() error {
		snapshot, err := uc.ScheduleEntryRepository.FindAll(ctx)
		if err != nil {
			return err
		}

		outcome, err = ProjectWeek(snapshot, weekStart, uc.InternalConfig.Ledger.WeekStartsOn, utils.GenerateEntryID)
		if err != nil {
			return mapLedgerError(err, "")
		}

		snapshotName, err = uc.SnapshotArchive.Archive(ctx, constvars.SnapshotReasonProjection, snapshot)
		if err != nil {
			return err
		}
		return uc.ScheduleEntryRepository.ReplaceAll(ctx, outcome.Snapshot)
	})
	if err != nil {
		uc.Log.Error("scheduleEntryUsecase.ProjectWeek error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	event := models.NewLedgerEvent(utils.GenerateEventID(), constvars.EventScheduleWeekProjected, requestID, outcome.Appended)
	sourceWeekStart := outcome.SourceWeekStart
	event.WeekStart = &sourceWeekStart
	event.Snapshot = snapshotName
	uc.publish(ctx, event)

	uc.Log.Info("scheduleEntryUsecase.ProjectWeek succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekStartKey, outcome.SourceWeekStart.String()),
		zap.String(constvars.LoggingNextWeekStartKey, outcome.NextWeekStart.String()),
		zap.Int(constvars.LoggingEntryCountKey, len(outcome.Appended)),
	)

	return &responses.ProjectedWeek{
		SourceWeekStart: outcome.SourceWeekStart.String(),
		NextWeekStart:   outcome.NextWeekStart.String(),
		Appended:        convertEntries(outcome.Appended),
	}, nil
}

func (uc *scheduleEntryUsecase) AuditLedger(ctx context.Context) ([]models.LedgerViolation, error) {
	requestID := utils.GetRequestID(ctx)

	var violations []models.LedgerViolation
	err := utils.LogOperation(uc.Log, "scheduleEntryUsecase.AuditLedger", requestID, func() error {
		snapshot, err := uc.ScheduleEntryRepository.FindAll(ctx)
		if err != nil {
			return err
		}
		violations = CheckLedger(snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, violation := range violations {
		uc.Log.Warn("scheduleEntryUsecase.AuditLedger violation found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingViolationKindKey, string(violation.Kind)),
			zap.String(constvars.LoggingClientIDKey, violation.ClientID),
			zap.String(constvars.LoggingEntryIDKey, violation.EntryID),
			zap.String(constvars.LoggingViolationDetailKey, violation.Detail),
		)
	}
	uc.Log.Info("scheduleEntryUsecase.AuditLedger finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingViolationCountKey, len(violations)),
	)
	return violations, nil
}

// publish sends a committed change downstream. The ledger is already
// replaced, so a failure is only logged.
func (uc *scheduleEntryUsecase) publish(ctx context.Context, event models.LedgerEvent) {
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("scheduleEntryUsecase.publish error calling EventPublisher.Publish",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
		return
	}
	utils.LogLedgerEvent(uc.Log, event.Type, event.RequestID,
		zap.Int(constvars.LoggingEntryCountKey, len(event.EntryIDs)),
	)
}

func mapLedgerError(err error, entryID string) error {
	switch {
	case errors.Is(err, models.ErrEntryNotFound):
		return exceptions.ErrScheduleEntryNotFound(err, entryID)
	case errors.Is(err, models.ErrMissingServiceType):
		return exceptions.ErrMissingServiceType(err)
	case errors.Is(err, models.ErrEmptyWeek):
		return exceptions.ErrEmptyWeek(err)
	default:
		return exceptions.ErrLedgerRule(err)
	}
}

func convertEntries(entries []models.ScheduleEntry) []responses.ScheduleEntry {
	converted := make([]responses.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, entry.ConvertIntoResponse())
	}
	return converted
}
