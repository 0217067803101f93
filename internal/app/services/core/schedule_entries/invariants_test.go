package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationKinds(violations []models.LedgerViolation) []models.ViolationKind {
	kinds := make([]models.ViolationKind, 0, len(violations))
	for _, violation := range violations {
		kinds = append(kinds, violation.Kind)
	}
	return kinds
}

// finishedRun is client-1 completing a four-session run with nothing queued.
func finishedRun() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
		newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
		newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(3, 4)),
		newEntry("d", "client-1", monday.AddDays(3), "09:00", withSubscription(4, 4)),
	}
}

func TestCheckLedger(t *testing.T) {
	t.Run("consistent ledger", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("s", "client-1", monday.AddDays(-1), "09:00"),
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4), withSickAbsence()),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 4)),
			newEntry("d", "client-1", monday.AddDays(3), "09:00", withSubscription(3, 4)),
			newEntry("e", "client-1", monday.AddDays(4), "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid8)),
			newEntry("f", "client-1", monday.AddDays(7), "09:00", withRollover(1, 8)),
			newEntry("x", "client-2", monday, "11:00", withSubscription(1, 4)),
		}

		assert.Empty(t, CheckLedger(snapshot))
	})

	t.Run("sick session may consume a number", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4), withSickAbsence()),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(3, 4)),
		}

		assert.Empty(t, CheckLedger(snapshot))
	})

	t.Run("gap in the sequence", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(3, 4)),
		}

		violations := CheckLedger(snapshot)

		require.Len(t, violations, 1)
		assert.Equal(t, models.ViolationRunSequence, violations[0].Kind)
		assert.Equal(t, "b", violations[0].EntryID)
		assert.Equal(t, "client-1", violations[0].ClientID)
	})

	t.Run("run not starting at one", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{newEntry("a", "client-1", monday, "09:00", withSubscription(2, 4))}

		assert.Equal(t, []models.ViolationKind{models.ViolationRunSequence}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("new run before the old one finished", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(1, 8)),
		}

		assert.Equal(t, []models.ViolationKind{models.ViolationOverlappingRuns}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("run size changing mid run", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 8)),
		}

		assert.Equal(t, []models.ViolationKind{models.ViolationRunSequence}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("finished run followed by a placeholder", func(t *testing.T) {
		placeholder := newEntry("e", "client-1", monday.AddDays(7), "09:00")
		models.RunState{Kind: models.RunPlaceholder, Next: models.PlaceholderBilling()}.ApplyTo(&placeholder)
		snapshot := append(finishedRun(), placeholder, newEntry("f", "client-1", monday.AddDays(8), "09:00"))

		assert.Empty(t, CheckLedger(snapshot))
	})

	t.Run("finished run followed by a charged single", func(t *testing.T) {
		snapshot := append(finishedRun(), newEntry("e", "client-1", monday.AddDays(7), "09:00"))

		violations := CheckLedger(snapshot)

		require.Len(t, violations, 1)
		assert.Equal(t, models.ViolationRunSuccession, violations[0].Kind)
		assert.Equal(t, "e", violations[0].EntryID)
	})

	t.Run("finished run followed by a new run with nothing queued", func(t *testing.T) {
		snapshot := append(finishedRun(), newEntry("e", "client-1", monday.AddDays(7), "09:00", withSubscription(1, 8)))

		assert.Equal(t, []models.ViolationKind{models.ViolationRunSuccession}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("queued prepaid of another size", func(t *testing.T) {
		snapshot := finishedRun()
		withPrepaid(models.Prepaid12)(&snapshot[3])
		snapshot = append(snapshot, newEntry("e", "client-1", monday.AddDays(7), "09:00", withRollover(1, 8)))

		assert.Equal(t, []models.ViolationKind{models.ViolationRunSuccession}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("sick repeat of the last session is still the finished run", func(t *testing.T) {
		snapshot := finishedRun()
		withPrepaid(models.Prepaid4)(&snapshot[3])
		snapshot = append(snapshot,
			newEntry("e", "client-1", monday.AddDays(5), "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid4), withSickAbsence()),
			newEntry("f", "client-1", monday.AddDays(7), "09:00", withRollover(1, 4)),
		)

		assert.Empty(t, CheckLedger(snapshot))
	})

	t.Run("single entry with a run size", func(t *testing.T) {
		broken := newEntry("a", "client-1", monday, "09:00")
		broken.TotalSessions = 4

		assert.Equal(t, []models.ViolationKind{models.ViolationSingleShape}, violationKinds(CheckLedger([]models.ScheduleEntry{broken})))
	})

	t.Run("progress above total", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{newEntry("a", "client-1", monday, "09:00", withSubscription(5, 4))}

		assert.Equal(t, []models.ViolationKind{models.ViolationProgressOverflow}, violationKinds(CheckLedger(snapshot)))
	})

	t.Run("input is not modified", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(3, 4)),
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
		}

		CheckLedger(snapshot)

		assert.Equal(t, "b", snapshot[0].ID)
		assert.Equal(t, 3, snapshot[0].SessionsCompleted)
	})
}
