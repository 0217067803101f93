package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRunState(t *testing.T) {
	t.Run("no history is fresh", func(t *testing.T) {
		other := newEntry("x", "client-2", monday, "09:00", withSubscription(1, 4))

		state := ResolveRunState([]models.ScheduleEntry{other}, "client-1", keyAt(monday.AddDays(1), "09:00"))

		assert.Equal(t, models.RunFresh, state.Kind)
		assert.Nil(t, state.Reference)
	})

	t.Run("single reference is fresh", func(t *testing.T) {
		entries := []models.ScheduleEntry{newEntry("a", "client-1", monday, "09:00")}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(2), "09:00"))

		assert.Equal(t, models.RunFresh, state.Kind)
		require.NotNil(t, state.Reference)
		assert.Equal(t, "a", state.Reference.ID)
	})

	t.Run("active run continues", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 8), withPrepaid(models.Prepaid4)),
			newEntry("b", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 8), withPrepaid(models.Prepaid4)),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(4), "10:00"))

		require.Equal(t, models.RunActive, state.Kind)
		assert.Equal(t, "b", state.Reference.ID)
		assert.Equal(t, models.PaymentTypeSubscription, state.Next.PaymentType)
		assert.Equal(t, models.PaymentDetailedSubscription8, state.Next.PaymentTypeDetailed)
		assert.Equal(t, 3, state.Next.SessionsCompleted)
		assert.Equal(t, 8, state.Next.TotalSessions)
		assert.Equal(t, models.PaymentMethodCard, state.Next.PaymentMethod)
		assert.True(t, decimal.NewFromInt(3600).Equal(state.Next.SubscriptionCost))
		assert.Equal(t, models.Prepaid4, state.Next.PrepaidSubscriptionType)
	})

	t.Run("reference is strictly before the slot", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday, "11:00", withSubscription(2, 4)),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday, "11:00"))

		assert.Equal(t, "a", state.Reference.ID)
		assert.Equal(t, 2, state.Next.SessionsCompleted)
	})

	t.Run("sick absences are skipped", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a0", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("a", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
			newEntry("b", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 4), withSickAbsence()),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(3), "09:00"))

		require.Equal(t, models.RunActive, state.Kind)
		assert.Equal(t, "a", state.Reference.ID)
		assert.Equal(t, 3, state.Next.SessionsCompleted)
	})

	t.Run("other absences are not skipped", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4), withAbsence(models.AbsenceFamily)),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(3), "09:00"))

		assert.Equal(t, "b", state.Reference.ID)
		assert.Equal(t, 3, state.Next.SessionsCompleted)
	})

	t.Run("only sick absences falls back to the latest", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4), withSickAbsence()),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4), withSickAbsence()),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(3), "09:00"))

		assert.Equal(t, "b", state.Reference.ID)
		assert.Equal(t, 3, state.Next.SessionsCompleted)
	})

	t.Run("completed run without prepaid becomes placeholder", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(4, 4), withPaymentDue(1800)),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(1), "09:00"))

		require.Equal(t, models.RunPlaceholder, state.Kind)
		assert.Equal(t, models.PaymentTypeSingle, state.Next.PaymentType)
		assert.Equal(t, models.PaymentDetailedSingle, state.Next.PaymentTypeDetailed)
		assert.Equal(t, 0, state.Next.SessionsCompleted)
		assert.Equal(t, 1, state.Next.TotalSessions)
		assert.True(t, state.Next.PaymentAmount.IsZero())
		assert.True(t, state.Next.SubscriptionCost.IsZero())
	})

	t.Run("completed run with prepaid rolls over", func(t *testing.T) {
		entries := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid8)),
		}

		state := ResolveRunState(entries, "client-1", keyAt(monday.AddDays(1), "09:00"))

		require.Equal(t, models.RunRollover, state.Kind)
		assert.Equal(t, models.PaymentDetailedSubscription8, state.Next.PaymentTypeDetailed)
		assert.Equal(t, 8, state.Next.TotalSessions)
		assert.Equal(t, 1, state.Next.SessionsCompleted)
		assert.Equal(t, models.PrepaidNone, state.Next.PrepaidSubscriptionType)
		assert.True(t, state.Next.PrepaidSubscriptionActivated)
		assert.True(t, decimal.NewFromInt(450).Equal(state.Next.PaymentAmount))
	})
}
