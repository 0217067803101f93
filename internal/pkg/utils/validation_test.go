package utils

import (
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/exceptions"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCreateRequest() requests.CreateScheduleEntry {
	return requests.CreateScheduleEntry{
		ClientID:     "client-1",
		SpecialistID: "specialist-1",
		Date:         "2024-10-14",
		Time:         "09:00",
		ServiceType:  "consultation",
	}
}

func TestValidateStruct(t *testing.T) {
	t.Run("Valid Request", func(t *testing.T) {
		request := validCreateRequest()
		assert.NoError(t, ValidateStruct(request))
	})

	t.Run("Missing Service Type Is Left To The Ledger", func(t *testing.T) {
		request := validCreateRequest()
		request.ServiceType = ""
		assert.NoError(t, ValidateStruct(request))
	})

	t.Run("Clock Out Of Range", func(t *testing.T) {
		request := validCreateRequest()
		request.Time = "24:00"

		err := ValidateStruct(request)

		assert.Error(t, err)
		assert.Equal(t, "time must be a time formatted as HH:mm", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Negative Amount", func(t *testing.T) {
		request := validCreateRequest()
		request.PaidAmount = "-10"

		err := ValidateStruct(request)

		assert.Equal(t, "paid_amount must be a non-negative decimal amount", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Unknown Detailed Payment Type", func(t *testing.T) {
		request := validCreateRequest()
		request.Billing = &requests.BillingOverrides{PaymentTypeDetailed: "subscription6"}

		assert.Error(t, ValidateStruct(request))
	})

	t.Run("Oneof Message Lists The Options", func(t *testing.T) {
		request := validCreateRequest()
		request.Status = "late"

		err := ValidateStruct(request)

		assert.Equal(t, "status must be one of [scheduled, completed, absent]", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Prepaid Size Can Be Cleared", func(t *testing.T) {
		none := 0
		six := 6
		assert.NoError(t, ValidateStruct(requests.UpdateScheduleEntry{PrepaidSubscriptionType: &none}))
		assert.Error(t, ValidateStruct(requests.UpdateScheduleEntry{PrepaidSubscriptionType: &six}))
	})
}

func TestValidateUrlParamID(t *testing.T) {
	assert.NoError(t, ValidateUrlParamID(uuid.NewString()))
	assert.Error(t, ValidateUrlParamID(""))
	assert.Error(t, ValidateUrlParamID("entry-1"))
}
