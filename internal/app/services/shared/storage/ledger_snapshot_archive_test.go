package storage

import (
	"context"
	"errors"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/constvars"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingStorage struct {
	bucket      string
	object      string
	contentType string
	content     []byte
	err         error
}

func (s *recordingStorage) UploadObject(ctx context.Context, bucketName, objectName, contentType string, content []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.bucket, s.object, s.contentType, s.content = bucketName, objectName, contentType, content
	return objectName, nil
}

func TestSnapshotArchive_Archive(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-42")
	entries := []models.ScheduleEntry{
		{ID: "a", ClientID: "client-1", Date: models.NewDate(2024, 10, 14)},
		{ID: "b", ClientID: "client-2", Date: models.NewDate(2024, 10, 15)},
	}

	t.Run("uploads the pre-image", func(t *testing.T) {
		store := &recordingStorage{}
		archive := NewLedgerSnapshotArchive(store, "snapshots", zap.NewNop())

		objectName, err := archive.Archive(ctx, constvars.SnapshotReasonProjection, entries)
		require.NoError(t, err)

		assert.Equal(t, "snapshots", store.bucket)
		assert.Equal(t, constvars.MIMEApplicationJSON, store.contentType)
		assert.True(t, strings.HasPrefix(objectName, "ledger-snapshots/projection/"))
		assert.True(t, strings.HasSuffix(objectName, "_req-42.json"))

		var snapshot ledgerSnapshot
		require.NoError(t, json.Unmarshal(store.content, &snapshot))
		assert.Equal(t, 2, snapshot.EntryCount)
		assert.Equal(t, "req-42", snapshot.RequestID)
		assert.Equal(t, "b", snapshot.Entries[1].ID)
	})

	t.Run("upload failure is returned", func(t *testing.T) {
		store := &recordingStorage{err: errors.New("bucket offline")}
		archive := NewLedgerSnapshotArchive(store, "snapshots", zap.NewNop())

		_, err := archive.Archive(ctx, constvars.SnapshotReasonActivation, entries)
		assert.Error(t, err)
	})
}
