package utils

import (
	"errors"
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(value string) *string {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

func TestMapCreateScheduleEntryRequestToModel(t *testing.T) {
	t.Run("Form Without Billing", func(t *testing.T) {
		request := &requests.CreateScheduleEntry{
			ClientID:     "  client-1 ",
			SpecialistID: "specialist-1",
			Date:         "2024-10-14",
			Time:         "9:30",
			ServiceType:  "session",
			IsPaid:       true,
			PaidAmount:   "450",
		}

		entry, billing, err := MapCreateScheduleEntryRequestToModel(request)

		require.NoError(t, err)
		assert.Nil(t, billing, "billing should be left to the ledger")
		assert.Equal(t, "client-1", entry.ClientID, "client id should be trimmed")
		assert.Equal(t, "09:30", entry.Time.String())
		assert.True(t, entry.PaidAmount.Equal(decimal.NewFromInt(450)))
		require.NotNil(t, entry.PaidDate)
		assert.Equal(t, "2024-10-14", entry.PaidDate.String(), "missing paid date should default to the session day")
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("Form With Subscription Billing", func(t *testing.T) {
		request := &requests.CreateScheduleEntry{
			ClientID:     "client-1",
			SpecialistID: "specialist-1",
			Date:         "2024-10-14",
			Time:         "09:00",
			ServiceType:  "session",
			Billing: &requests.BillingOverrides{
				PaymentTypeDetailed:     "subscription8",
				PaymentAmount:           "400.50",
				SubscriptionCost:        "3204",
				PaymentMethod:           "cash",
				PrepaidSubscriptionType: 4,
			},
		}

		_, billing, err := MapCreateScheduleEntryRequestToModel(request)

		require.NoError(t, err)
		require.NotNil(t, billing)
		assert.Equal(t, models.PaymentTypeSubscription, billing.PaymentType)
		assert.Equal(t, 1, billing.SessionsCompleted)
		assert.Equal(t, 8, billing.TotalSessions)
		assert.Equal(t, "400.50", billing.PaymentAmount.StringFixed(2))
		assert.Equal(t, models.PaymentMethodCash, billing.PaymentMethod)
		assert.Equal(t, models.Prepaid4, billing.PrepaidSubscriptionType)
	})

	t.Run("Unreadable Amount", func(t *testing.T) {
		request := &requests.CreateScheduleEntry{
			ClientID:   "client-1",
			Date:       "2024-10-14",
			Time:       "09:00",
			PaidAmount: "lots",
		}

		_, _, err := MapCreateScheduleEntryRequestToModel(request)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func storedSickEntry() models.ScheduleEntry {
	paidDate := models.NewDate(2024, time.October, 10)
	return models.ScheduleEntry{
		ID:                  "a",
		ClientID:            "client-1",
		Date:                models.NewDate(2024, time.October, 14),
		ServiceType:         models.ServiceTypeSession,
		Status:              models.StatusAbsent,
		AbsenceCategory:     models.AbsenceSick,
		AbsenceReason:       "flu",
		PaymentType:         models.PaymentTypeSingle,
		PaymentTypeDetailed: models.PaymentDetailedSingle,
		SessionsCompleted:   1,
		TotalSessions:       1,
		IsPaid:              true,
		PaidAmount:          decimal.NewFromInt(500),
		PaidDate:            &paidDate,
	}
}

func TestApplyUpdateScheduleEntryRequest(t *testing.T) {
	t.Run("Status Change Clears Absence", func(t *testing.T) {
		entry := storedSickEntry()

		err := ApplyUpdateScheduleEntryRequest(&entry, &requests.UpdateScheduleEntry{Status: stringPtr("completed")})

		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, entry.Status)
		assert.Equal(t, models.AbsenceNone, entry.AbsenceCategory)
		assert.Empty(t, entry.AbsenceReason)
	})

	t.Run("Detailed Type Sets Run Size", func(t *testing.T) {
		entry := storedSickEntry()

		err := ApplyUpdateScheduleEntryRequest(&entry, &requests.UpdateScheduleEntry{PaymentTypeDetailed: stringPtr("subscription12")})

		require.NoError(t, err)
		assert.Equal(t, models.PaymentTypeSubscription, entry.PaymentType)
		assert.Equal(t, 12, entry.TotalSessions)
		assert.Equal(t, 1, entry.SessionsCompleted, "progress is left to the caller")
	})

	t.Run("Unpaid Clears Receipt", func(t *testing.T) {
		entry := storedSickEntry()

		err := ApplyUpdateScheduleEntryRequest(&entry, &requests.UpdateScheduleEntry{IsPaid: boolPtr(false)})

		require.NoError(t, err)
		assert.False(t, entry.IsPaid)
		assert.True(t, entry.PaidAmount.IsZero())
		assert.Nil(t, entry.PaidDate)
	})

	t.Run("Untouched Receipt Keeps Paid Date", func(t *testing.T) {
		entry := storedSickEntry()

		err := ApplyUpdateScheduleEntryRequest(&entry, &requests.UpdateScheduleEntry{Note: stringPtr("moved room")})

		require.NoError(t, err)
		require.NotNil(t, entry.PaidDate)
		assert.Equal(t, "2024-10-10", entry.PaidDate.String())
		assert.Equal(t, "moved room", entry.Note)
	})

	t.Run("Invalid Time", func(t *testing.T) {
		entry := storedSickEntry()

		err := ApplyUpdateScheduleEntryRequest(&entry, &requests.UpdateScheduleEntry{Time: stringPtr("25:00")})

		assert.Error(t, err)
	})
}

func TestApplyMarkScheduleEntryPaidRequest(t *testing.T) {
	entry := storedSickEntry()
	entry.ClearPaymentReceipt()

	err := ApplyMarkScheduleEntryPaidRequest(&entry, &requests.MarkScheduleEntryPaid{PaidAmount: "1800", PaidDate: "2024-10-12"})

	require.NoError(t, err)
	assert.True(t, entry.IsPaid)
	assert.Equal(t, "1800.00", entry.PaidAmount.StringFixed(2))
	require.NotNil(t, entry.PaidDate)
	assert.Equal(t, "2024-10-12", entry.PaidDate.String())
}
