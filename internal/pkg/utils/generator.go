package utils

import (
	"fmt"
	"schedule-ledger-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateEntryID() string {
	return uuid.NewString()
}

func GenerateEventID() string {
	return uuid.NewString()
}

// GenerateSnapshotObjectName builds a sortable object key such as
// ledger-snapshots/projection/20241014T093000.000000000Z_<request id>.json
func GenerateSnapshotObjectName(reason, requestID string, at time.Time) string {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	timestamp := at.UTC().Format("20060102T150405.000000000Z")
	return fmt.Sprintf("%s/%s/%s_%s.json", constvars.SnapshotObjectPrefix, reason, timestamp, requestID)
}
