package storage

import (
	"context"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/exceptions"
	"schedule-ledger-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ledgerSnapshot struct {
	Reason     string                 `json:"reason"`
	RequestID  string                 `json:"requestId,omitempty"`
	CapturedAt time.Time              `json:"capturedAt"`
	EntryCount int                    `json:"entryCount"`
	Entries    []models.ScheduleEntry `json:"entries"`
}

type snapshotArchive struct {
	storage    contracts.Storage
	bucketName string
	Log        *zap.Logger
}

// NewLedgerSnapshotArchive writes the full ledger as one JSON object before a
// bulk rewrite, so a bad projection or activation can be inspected and
// restored by hand.
func NewLedgerSnapshotArchive(storage contracts.Storage, bucketName string, logger *zap.Logger) contracts.LedgerSnapshotArchive {
	return &snapshotArchive{
		storage:    storage,
		bucketName: bucketName,
		Log:        logger,
	}
}

func (a *snapshotArchive) Archive(ctx context.Context, reason string, entries []models.ScheduleEntry) (string, error) {
	requestID := utils.GetRequestID(ctx)
	capturedAt := time.Now()

	body, err := json.Marshal(ledgerSnapshot{
		Reason:     reason,
		RequestID:  requestID,
		CapturedAt: capturedAt,
		EntryCount: len(entries),
		Entries:    entries,
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := utils.GenerateSnapshotObjectName(reason, requestID, capturedAt)
	objectName, err = a.storage.UploadObject(ctx, a.bucketName, objectName, constvars.MIMEApplicationJSON, body)
	if err != nil {
		a.Log.Error("snapshotArchive.Archive error calling storage.UploadObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, a.bucketName),
			zap.Error(err),
		)
		return "", err
	}

	a.Log.Info("snapshotArchive.Archive succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, a.bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingEntryCountKey, len(entries)),
	)
	return objectName, nil
}

type nopArchive struct{}

// NewNopSnapshotArchive skips archiving. Used when snapshots are disabled.
func NewNopSnapshotArchive() contracts.LedgerSnapshotArchive {
	return nopArchive{}
}

func (nopArchive) Archive(context.Context, string, []models.ScheduleEntry) (string, error) {
	return "", nil
}
