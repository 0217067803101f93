package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(monday.AddDays(3), time.Monday)
	assert.Equal(t, monday, start)
	assert.Equal(t, monday.AddDays(7), end)

	start, _ = WeekBounds(monday.AddDays(3), time.Sunday)
	assert.Equal(t, monday.AddDays(-1), start)
}

func TestProjectWeek(t *testing.T) {
	t.Run("empty week", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{newEntry("a", "client-1", monday.AddDays(-7), "09:00")}

		_, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		assert.ErrorIs(t, err, models.ErrEmptyWeek)
		assert.Len(t, snapshot, 1)
	})

	t.Run("copies are fresh bookings a week later", func(t *testing.T) {
		source := newEntry("a", "client-1", monday.AddDays(1), "09:00",
			withSickAbsence(), withPaid(500, monday), withPaymentDue(500))
		source.Note = "ground floor"
		snapshot := []models.ScheduleEntry{source}

		outcome, err := ProjectWeek(snapshot, monday.AddDays(3), time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, monday, outcome.SourceWeekStart)
		assert.Equal(t, monday.AddDays(7), outcome.NextWeekStart)
		require.Len(t, outcome.Appended, 1)
		require.Len(t, outcome.Snapshot, 2)

		copied := outcome.Appended[0]
		assert.Equal(t, "p1", copied.ID)
		assert.Equal(t, monday.AddDays(8), copied.Date)
		assert.Equal(t, source.Time, copied.Time)
		assert.Equal(t, models.StatusScheduled, copied.Status)
		assert.Equal(t, models.AbsenceNone, copied.AbsenceCategory)
		assert.Empty(t, copied.AbsenceReason)
		assert.False(t, copied.IsPaid)
		assert.Nil(t, copied.PaidDate)
		assert.True(t, copied.PaidAmount.IsZero())
		assert.Equal(t, "ground floor", copied.Note)
		assert.Equal(t, source.ServiceType, copied.ServiceType)
		assert.True(t, snapshot[0].IsPaid)
	})

	t.Run("active run continues across the copies", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 8)),
			newEntry("b", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 8)),
			newEntry("x", "client-2", monday.AddDays(1), "12:00"),
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"subscription 1/8", "subscription 2/8", "subscription 3/8", "subscription 4/8",
		}, progressOf(clientEntries(outcome.Snapshot, "client-1")))
		assert.Equal(t, []string{"single 1/1", "single 1/1"}, progressOf(clientEntries(outcome.Snapshot, "client-2")))
		assertLedgerInvariants(t, outcome.Snapshot)
	})

	t.Run("run completing mid week leaves placeholders", func(t *testing.T) {
		var snapshot []models.ScheduleEntry
		for i, id := range []string{"a", "b", "c", "d", "e"} {
			snapshot = append(snapshot, newEntry(id, "client-1", monday.AddDays(i), "09:00", withSubscription(i+1, 8)))
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"subscription 6/8", "subscription 7/8", "subscription 8/8",
			"single 0/1", "single 0/1",
		}, progressOf(outcome.Appended))
		for _, placeholder := range outcome.Appended[3:] {
			assert.True(t, placeholder.PaymentAmount.IsZero())
			assert.True(t, placeholder.SubscriptionCost.IsZero())
		}
		assertLedgerInvariants(t, outcome.Snapshot)
	})

	t.Run("completed run with prepaid rolls over", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(3, 4)),
			newEntry("b", "client-1", monday.AddDays(3), "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid8)),
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{"subscription 1/8", "subscription 2/8"}, progressOf(outcome.Appended))
		assert.True(t, outcome.Appended[0].PrepaidSubscriptionActivated)
		assert.Equal(t, models.PrepaidNone, outcome.Appended[0].PrepaidSubscriptionType)
		assert.False(t, outcome.Appended[1].PrepaidSubscriptionActivated)
	})

	t.Run("sick absence repeating the last number keeps the run going", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday.AddDays(-7), "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday, "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 4), withSickAbsence()),
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{"subscription 3/4", "subscription 4/4"}, progressOf(outcome.Appended))
		assertLedgerInvariants(t, outcome.Snapshot)
	})

	t.Run("sick session booked ahead counts toward the seed", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday.AddDays(-7), "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday, "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(3, 4), withSickAbsence()),
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{"subscription 4/4", "single 0/1"}, progressOf(outcome.Appended))
		assert.True(t, outcome.Appended[1].PaymentAmount.IsZero())
		assertLedgerInvariants(t, outcome.Snapshot)
	})

	t.Run("seed stays inside the rolled over run", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday.AddDays(-7), "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(-5), "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(-3), "09:00", withSubscription(3, 4)),
			newEntry("d", "client-1", monday, "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid8)),
			newEntry("e", "client-1", monday.AddDays(2), "09:00", withRollover(1, 8)),
		}

		outcome, err := ProjectWeek(snapshot, monday, time.Monday, sequentialIDs())

		require.NoError(t, err)
		assert.Equal(t, []string{"subscription 2/8", "subscription 3/8"}, progressOf(outcome.Appended))
		assertLedgerInvariants(t, outcome.Snapshot)
	})
}
