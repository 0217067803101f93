package models

import "time"

// AuditTimestamps records when an entry was first stored and last changed.
// Entries are removed outright, so there is no soft-delete marker.
type AuditTimestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *AuditTimestamps) SetCreatedAtUpdatedAt() {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *AuditTimestamps) SetUpdatedAt() {
	m.UpdatedAt = time.Now().UTC()
}
