package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftFor(id, clientID string, date models.Date, clock string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:           id,
		ClientID:     clientID,
		SpecialistID: "specialist-2",
		Date:         date,
		Time:         mustClock(clock),
		ServiceType:  models.ServiceTypeConsultation,
		Note:         "bring previous report",
	}
}

func TestBuildEntry(t *testing.T) {
	t.Run("missing service type is rejected", func(t *testing.T) {
		draft := draftFor("n", "client-1", monday, "09:00")
		draft.ServiceType = models.ServiceTypeUnset

		_, _, err := BuildEntry(nil, NewEntryDraft{Entry: draft})

		assert.ErrorIs(t, err, models.ErrMissingServiceType)
	})

	t.Run("unknown service type is rejected", func(t *testing.T) {
		draft := draftFor("n", "client-1", monday, "09:00")
		draft.ServiceType = "massage"

		_, _, err := BuildEntry(nil, NewEntryDraft{Entry: draft})

		assert.ErrorIs(t, err, models.ErrUnknownServiceType)
	})

	t.Run("fresh client defaults to a single session", func(t *testing.T) {
		entry, state, err := BuildEntry(nil, NewEntryDraft{Entry: draftFor("n", "client-1", monday, "09:00")})

		require.NoError(t, err)
		assert.Equal(t, models.RunFresh, state.Kind)
		assert.Equal(t, models.StatusScheduled, entry.Status)
		assert.Equal(t, models.PaymentTypeSingle, entry.PaymentType)
		assert.Equal(t, 1, entry.SessionsCompleted)
		assert.Equal(t, 1, entry.TotalSessions)
	})

	t.Run("fresh client keeps the chosen billing", func(t *testing.T) {
		billing := models.Billing{
			PaymentType:         models.PaymentTypeSubscription,
			PaymentTypeDetailed: models.PaymentDetailedSubscription12,
			SessionsCompleted:   1,
			TotalSessions:       12,
			PaymentAmount:       decimal.NewFromInt(400),
			SubscriptionCost:    decimal.NewFromInt(4800),
			PaymentMethod:       models.PaymentMethodCash,
		}

		entry, _, err := BuildEntry(nil, NewEntryDraft{Entry: draftFor("n", "client-1", monday, "09:00"), Billing: &billing})

		require.NoError(t, err)
		assert.Equal(t, models.PaymentDetailedSubscription12, entry.PaymentTypeDetailed)
		assert.Equal(t, 12, entry.TotalSessions)
		assert.True(t, decimal.NewFromInt(4800).Equal(entry.SubscriptionCost))
	})

	t.Run("chosen billing must be consistent", func(t *testing.T) {
		billing := models.Billing{
			PaymentType:         models.PaymentTypeSubscription,
			PaymentTypeDetailed: models.PaymentDetailedSubscription4,
			SessionsCompleted:   5,
			TotalSessions:       4,
		}

		_, _, err := BuildEntry(nil, NewEntryDraft{Entry: draftFor("n", "client-1", monday, "09:00"), Billing: &billing})

		assert.ErrorIs(t, err, models.ErrSessionsExceedTotal)
	})

	t.Run("non positive run size is rejected", func(t *testing.T) {
		billing := models.Billing{PaymentType: models.PaymentTypeSubscription, TotalSessions: 0}

		_, _, err := BuildEntry(nil, NewEntryDraft{Entry: draftFor("n", "client-1", monday, "09:00"), Billing: &billing})

		assert.ErrorIs(t, err, models.ErrNonPositiveTotalSessions)
	})

	t.Run("active run overrides the form billing", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
		}
		ignored := models.Billing{PaymentType: models.PaymentTypeSingle, PaymentTypeDetailed: models.PaymentDetailedSingle, TotalSessions: 1}

		entry, state, err := BuildEntry(snapshot, NewEntryDraft{Entry: draftFor("n", "client-1", monday.AddDays(2), "09:00"), Billing: &ignored})

		require.NoError(t, err)
		assert.Equal(t, models.RunActive, state.Kind)
		assert.Equal(t, 2, entry.SessionsCompleted)
		assert.Equal(t, models.ServiceTypeConsultation, entry.ServiceType)
		assert.Equal(t, "specialist-2", entry.SpecialistID)
		assert.Equal(t, "bring previous report", entry.Note)
		assertLedgerInvariants(t, append(snapshot, entry))
	})

	t.Run("sick absence does not consume the next number", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a0", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("a", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
			newEntry("b", "client-1", monday.AddDays(2), "09:00", withSubscription(2, 4), withSickAbsence()),
		}

		entry, _, err := BuildEntry(snapshot, NewEntryDraft{Entry: draftFor("n", "client-1", monday.AddDays(3), "09:00")})

		require.NoError(t, err)
		assert.Equal(t, 3, entry.SessionsCompleted)
		assert.Equal(t, 4, entry.TotalSessions)
		assertLedgerInvariants(t, append(snapshot, entry))
	})

	t.Run("completion without prepaid creates a placeholder", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(3, 4)),
			newEntry("d", "client-1", monday.AddDays(3), "09:00", withSubscription(4, 4)),
		}
		draft := draftFor("n", "client-1", monday.AddDays(7), "09:00")
		draft.PaymentDueThisDay = true
		draft.PaymentDueAmount = decimal.NewFromInt(1800)

		entry, state, err := BuildEntry(snapshot, NewEntryDraft{Entry: draft})

		require.NoError(t, err)
		assert.Equal(t, models.RunPlaceholder, state.Kind)
		assert.Equal(t, models.PaymentTypeSingle, entry.PaymentType)
		assert.Equal(t, models.PaymentDetailedSingle, entry.PaymentTypeDetailed)
		assert.Equal(t, 0, entry.SessionsCompleted)
		assert.Equal(t, 1, entry.TotalSessions)
		assert.True(t, entry.PaymentAmount.IsZero())
		assert.True(t, entry.SubscriptionCost.IsZero())
		assert.True(t, entry.PaymentDueAmount.IsZero())
		assert.False(t, entry.PaymentDueThisDay)
		assertLedgerInvariants(t, append(snapshot, entry))
	})

	t.Run("completion with prepaid rolls into the new run", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{
			newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4)),
			newEntry("b", "client-1", monday.AddDays(1), "09:00", withSubscription(2, 4)),
			newEntry("c", "client-1", monday.AddDays(2), "09:00", withSubscription(3, 4)),
			newEntry("d", "client-1", monday.AddDays(3), "09:00", withSubscription(4, 4), withPrepaid(models.Prepaid8)),
		}

		entry, state, err := BuildEntry(snapshot, NewEntryDraft{Entry: draftFor("n", "client-1", monday.AddDays(7), "09:00")})

		require.NoError(t, err)
		assert.Equal(t, models.RunRollover, state.Kind)
		assert.Equal(t, models.PaymentTypeSubscription, entry.PaymentType)
		assert.Equal(t, models.PaymentDetailedSubscription8, entry.PaymentTypeDetailed)
		assert.Equal(t, 8, entry.TotalSessions)
		assert.Equal(t, 1, entry.SessionsCompleted)
		assert.True(t, entry.PrepaidSubscriptionActivated)
		assertLedgerInvariants(t, append(snapshot, entry))
	})

	t.Run("snapshot is left untouched", func(t *testing.T) {
		snapshot := []models.ScheduleEntry{newEntry("a", "client-1", monday, "09:00", withSubscription(1, 4))}
		before := snapshot[0]

		_, _, err := BuildEntry(snapshot, NewEntryDraft{Entry: draftFor("n", "client-1", monday.AddDays(1), "09:00")})

		require.NoError(t, err)
		assert.Equal(t, before, snapshot[0])
	})
}
