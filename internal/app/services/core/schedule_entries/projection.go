package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"time"
)

const daysPerWeek = 7

// ProjectionOutcome is the ledger after copying one week forward.
type ProjectionOutcome struct {
	Snapshot        []models.ScheduleEntry
	SourceWeekStart models.Date
	NextWeekStart   models.Date
	Appended        []models.ScheduleEntry
}

// WeekBounds returns [start, end) of the week containing day.
func WeekBounds(day models.Date, firstDay time.Weekday) (models.Date, models.Date) {
	start := day.StartOfWeek(firstDay)
	return start, start.AddDays(daysPerWeek)
}

// EntriesInRange returns the entries dated in [from, to), in order.
func EntriesInRange(snapshot []models.ScheduleEntry, from, to models.Date) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	for _, entry := range snapshot {
		if !entry.Date.Before(from) && entry.Date.Before(to) {
			entries = append(entries, entry.Clone())
		}
	}
	SortEntries(entries)
	return entries
}

// ProjectWeek copies every entry of the week containing weekStart seven days
// forward. newID supplies ids for the copies. An empty week is an error and
// leaves nothing to commit.
func ProjectWeek(snapshot []models.ScheduleEntry, weekStart models.Date, firstDay time.Weekday, newID func() string) (ProjectionOutcome, error) {
	from, to := WeekBounds(weekStart, firstDay)
	sources := EntriesInRange(snapshot, from, to)
	if len(sources) == 0 {
		return ProjectionOutcome{}, models.ErrEmptyWeek
	}

	runs := make(map[string]*projectedRun)
	appended := make([]models.ScheduleEntry, 0, len(sources))
	for _, source := range sources {
		projected := copyForward(source, newID())

		run, tracked := runs[source.ClientID]
		if !tracked && source.IsSubscription() {
			run = newProjectedRun(sources, source.ClientID)
			runs[source.ClientID] = run
		}
		if run != nil {
			run.advance(&projected, source)
		}

		if err := ValidateEntry(projected); err != nil {
			return ProjectionOutcome{}, err
		}
		appended = append(appended, projected)
	}

	working := cloneEntries(snapshot)
	working = append(working, cloneEntries(appended)...)
	return ProjectionOutcome{
		Snapshot:        working,
		SourceWeekStart: from,
		NextWeekStart:   to,
		Appended:        appended,
	}, nil
}

// copyForward is the source moved one week on as a fresh, unpaid booking.
func copyForward(source models.ScheduleEntry, id string) models.ScheduleEntry {
	projected := source.Clone()
	projected.ID = id
	projected.Date = source.Date.AddDays(daysPerWeek)
	projected.Status = models.StatusScheduled
	projected.AbsenceCategory = models.AbsenceNone
	projected.AbsenceReason = ""
	projected.ClearPaymentReceipt()
	projected.SetCreatedAtUpdatedAt()
	return projected
}

// projectedRun is one client's run state while its week is being copied.
// Once the run completes inside the copied week, every later copy of that
// client is a placeholder.
type projectedRun struct {
	state     models.RunState
	completed bool
}

// newProjectedRun seeds from the furthest session the client's last source
// run reached in the week, sick absences included.
func newProjectedRun(sources []models.ScheduleEntry, clientID string) *projectedRun {
	var last *models.ScheduleEntry
	highest := 0
	for i := len(sources) - 1; i >= 0; i-- {
		entry := &sources[i]
		if entry.ClientID != clientID || !entry.IsSubscription() {
			continue
		}
		if last == nil {
			last = entry
		} else if entry.TotalSessions != last.TotalSessions || entry.PaymentTypeDetailed != last.PaymentTypeDetailed {
			break
		}
		if entry.SessionsCompleted > highest {
			highest = entry.SessionsCompleted
		}
		if entry.SessionsCompleted <= 1 {
			break
		}
	}

	seed := last.Clone()
	seed.SessionsCompleted = highest
	return &projectedRun{state: models.DeriveRunState(seed)}
}

func (r *projectedRun) advance(projected *models.ScheduleEntry, source models.ScheduleEntry) {
	if r.completed {
		models.RunState{Kind: models.RunPlaceholder, Next: models.PlaceholderBilling()}.ApplyTo(projected)
		return
	}
	if !source.IsSubscription() {
		return
	}

	r.state.ApplyTo(projected)
	if r.state.Kind == models.RunPlaceholder {
		return
	}
	if projected.IsRunComplete() {
		r.completed = true
		return
	}
	r.state = models.DeriveRunState(*projected)
}
