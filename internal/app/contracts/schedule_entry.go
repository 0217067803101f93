package contracts

import (
	"context"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/dto/responses"
)

type ScheduleEntryUsecase interface {
	CreateEntry(ctx context.Context, request *requests.CreateScheduleEntry) (*responses.ScheduleEntry, error)
	UpdateEntry(ctx context.Context, entryID string, request *requests.UpdateScheduleEntry) (*responses.UpdatedEntrySet, error)
	MarkPaidAndActivate(ctx context.Context, entryID string, request *requests.MarkScheduleEntryPaid) (*responses.UpdatedEntrySet, error)
	DeleteEntry(ctx context.Context, entryID string) error
	FindByID(ctx context.Context, entryID string) (*responses.ScheduleEntry, error)
	FindWeek(ctx context.Context, request *requests.FindScheduleWeek) (*responses.ScheduleWeek, error)
	FindClientEntries(ctx context.Context, clientID string) ([]responses.ScheduleEntry, error)
	ResolveSubscriptionRun(ctx context.Context, request *requests.FindSubscriptionRun) (*responses.SubscriptionRun, error)
	ProjectWeek(ctx context.Context, request *requests.ProjectScheduleWeek) (*responses.ProjectedWeek, error)
	AuditLedger(ctx context.Context) ([]models.LedgerViolation, error)
}

// ScheduleEntryRepository is the entry store. Single-entry lookups return
// nil, nil when nothing matches.
type ScheduleEntryRepository interface {
	FindAll(ctx context.Context) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, entryID string) (*models.ScheduleEntry, error)
	FindByClientID(ctx context.Context, clientID string) ([]models.ScheduleEntry, error)
	// FindByDateRange returns entries dated in [from, to).
	FindByDateRange(ctx context.Context, from, to models.Date) ([]models.ScheduleEntry, error)
	// ReplaceAll makes entries the complete stored collection in one atomic step.
	ReplaceAll(ctx context.Context, entries []models.ScheduleEntry) error
	DeleteByID(ctx context.Context, entryID string) (bool, error)
}

type LedgerEventPublisher interface {
	Publish(ctx context.Context, event models.LedgerEvent) error
}

type LedgerSnapshotArchive interface {
	// Archive stores the pre-image of the ledger and returns the object name.
	Archive(ctx context.Context, reason string, entries []models.ScheduleEntry) (string, error)
}
