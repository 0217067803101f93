package schedule_entries

import (
	"context"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/app/models"
	"sync"
)

// ScheduleEntryMemoryRepository keeps the ledger in process. It backs local
// runs with LEDGER_STORE_DRIVER=memory and the usecase tests.
type ScheduleEntryMemoryRepository struct {
	mu      sync.RWMutex
	entries []models.ScheduleEntry
}

func NewScheduleEntryMemoryRepository(seed ...models.ScheduleEntry) *ScheduleEntryMemoryRepository {
	return &ScheduleEntryMemoryRepository{entries: cloneEntries(seed)}
}

var _ contracts.ScheduleEntryRepository = (*ScheduleEntryMemoryRepository)(nil)

func (r *ScheduleEntryMemoryRepository) FindAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	return r.filter(func(models.ScheduleEntry) bool { return true }), nil
}

func (r *ScheduleEntryMemoryRepository) FindByID(ctx context.Context, entryID string) (*models.ScheduleEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := findEntryIndex(r.entries, entryID)
	if index < 0 {
		return nil, nil
	}
	entry := r.entries[index].Clone()
	return &entry, nil
}

func (r *ScheduleEntryMemoryRepository) FindByClientID(ctx context.Context, clientID string) ([]models.ScheduleEntry, error) {
	return r.filter(func(entry models.ScheduleEntry) bool { return entry.ClientID == clientID }), nil
}

func (r *ScheduleEntryMemoryRepository) FindByDateRange(ctx context.Context, from, to models.Date) ([]models.ScheduleEntry, error) {
	return r.filter(func(entry models.ScheduleEntry) bool {
		return !entry.Date.Before(from) && entry.Date.Before(to)
	}), nil
}

func (r *ScheduleEntryMemoryRepository) ReplaceAll(ctx context.Context, entries []models.ScheduleEntry) error {
	replacement := cloneEntries(entries)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = replacement
	return nil
}

func (r *ScheduleEntryMemoryRepository) DeleteByID(ctx context.Context, entryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := findEntryIndex(r.entries, entryID)
	if index < 0 {
		return false, nil
	}
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
	return true, nil
}

func (r *ScheduleEntryMemoryRepository) filter(keep func(models.ScheduleEntry) bool) []models.ScheduleEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []models.ScheduleEntry
	for _, entry := range r.entries {
		if keep(entry) {
			entries = append(entries, entry.Clone())
		}
	}
	SortEntries(entries)
	return entries
}
