package schedule_entries

import "schedule-ledger-service/internal/app/models"

// ResolveRunState works out where a new session for clientID at key sits in
// the client's subscription history.
func ResolveRunState(snapshot []models.ScheduleEntry, clientID string, key models.SortKey) models.RunState {
	return NewClientLedger(snapshot, clientID).RunStateAt(key)
}

func (l *ClientLedger) RunStateAt(key models.SortKey) models.RunState {
	reference, ok := l.Reference(key)
	if !ok {
		return models.FreshRunState()
	}
	return models.DeriveRunState(*reference)
}
