package models

import "time"

// LedgerEvent describes one committed change to the ledger. It is published
// after the store has been replaced, never before.
type LedgerEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	RequestID  string          `json:"requestId,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	ClientID   string          `json:"clientId,omitempty"`
	WeekStart  *Date           `json:"weekStart,omitempty"`
	Snapshot   string          `json:"snapshot,omitempty"`
	EntryIDs   []string        `json:"entryIds"`
	Entries    []ScheduleEntry `json:"entries,omitempty"`
}

func NewLedgerEvent(id, eventType, requestID string, entries []ScheduleEntry) LedgerEvent {
	event := LedgerEvent{
		ID:         id,
		Type:       eventType,
		RequestID:  requestID,
		OccurredAt: time.Now(),
		EntryIDs:   make([]string, 0, len(entries)),
		Entries:    entries,
	}
	for _, entry := range entries {
		event.EntryIDs = append(event.EntryIDs, entry.ID)
	}
	return event
}
