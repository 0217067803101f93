package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"sort"
)

// ClientLedger is one client's entries in chronological order. It indexes a
// shared snapshot, so entries returned by At can be edited in place.
type ClientLedger struct {
	clientID string
	snapshot []models.ScheduleEntry
	order    []int
}

func NewClientLedger(snapshot []models.ScheduleEntry, clientID string) *ClientLedger {
	ledger := &ClientLedger{clientID: clientID, snapshot: snapshot}
	for i := range snapshot {
		if snapshot[i].ClientID == clientID {
			ledger.order = append(ledger.order, i)
		}
	}
	sort.SliceStable(ledger.order, func(a, b int) bool {
		return entryLess(snapshot[ledger.order[a]], snapshot[ledger.order[b]])
	})
	return ledger
}

func (l *ClientLedger) ClientID() string {
	return l.clientID
}

func (l *ClientLedger) Len() int {
	return len(l.order)
}

func (l *ClientLedger) At(i int) *models.ScheduleEntry {
	return &l.snapshot[l.order[i]]
}

// Reference is the entry the next session at key continues from: the latest
// earlier entry that is not a sick absence, or the latest sick absence when
// nothing else precedes key.
func (l *ClientLedger) Reference(key models.SortKey) (*models.ScheduleEntry, bool) {
	var latestSick *models.ScheduleEntry
	for i := l.Len() - 1; i >= 0; i-- {
		entry := l.At(i)
		if !entry.Key().Before(key) {
			continue
		}
		if !entry.IsSickAbsence() {
			return entry, true
		}
		if latestSick == nil {
			latestSick = entry
		}
	}
	if latestSick != nil {
		return latestSick, true
	}
	return nil, false
}

// HasSubscriptionBefore reports whether any entry other than excludeID dated
// before date is billed as a subscription. Earlier sessions on the same day
// do not count.
func (l *ClientLedger) HasSubscriptionBefore(date models.Date, excludeID string) bool {
	for i := 0; i < l.Len(); i++ {
		entry := l.At(i)
		if !entry.Date.Before(date) {
			return false
		}
		if entry.ID != excludeID && entry.IsSubscription() {
			return true
		}
	}
	return false
}

// From returns the entries dated on or after date, in order.
func (l *ClientLedger) From(date models.Date) []*models.ScheduleEntry {
	var entries []*models.ScheduleEntry
	for i := 0; i < l.Len(); i++ {
		entry := l.At(i)
		if !entry.Date.Before(date) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Entries copies the client's entries out in order.
func (l *ClientLedger) Entries() []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		entries = append(entries, l.At(i).Clone())
	}
	return entries
}

// SortEntries orders entries by date, then time, then id.
func SortEntries(entries []models.ScheduleEntry) {
	sort.SliceStable(entries, func(a, b int) bool {
		return entryLess(entries[a], entries[b])
	})
}

func entryLess(a, b models.ScheduleEntry) bool {
	if cmp := a.Key().Compare(b.Key()); cmp != 0 {
		return cmp < 0
	}
	return a.ID < b.ID
}

func cloneEntries(entries []models.ScheduleEntry) []models.ScheduleEntry {
	cloned := make([]models.ScheduleEntry, len(entries))
	for i := range entries {
		cloned[i] = entries[i].Clone()
	}
	return cloned
}

func findEntryIndex(entries []models.ScheduleEntry, entryID string) int {
	for i := range entries {
		if entries[i].ID == entryID {
			return i
		}
	}
	return -1
}
