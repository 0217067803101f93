package utils

import (
	"schedule-ledger-service/internal/app/models"
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/exceptions"
	"strings"

	"github.com/shopspring/decimal"
)

// MapCreateScheduleEntryRequestToModel returns the entry as typed by staff
// and the billing they chose, nil when the form carried none.
func MapCreateScheduleEntryRequestToModel(req *requests.CreateScheduleEntry) (models.ScheduleEntry, *models.Billing, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return models.ScheduleEntry{}, nil, exceptions.ErrInvalidFormat(err, "date")
	}
	clock, err := models.ParseClock(req.Time)
	if err != nil {
		return models.ScheduleEntry{}, nil, exceptions.ErrInvalidFormat(err, "time")
	}

	entry := models.ScheduleEntry{
		ClientID:          strings.TrimSpace(req.ClientID),
		ClientName:        req.ClientName,
		SpecialistID:      strings.TrimSpace(req.SpecialistID),
		SpecialistName:    req.SpecialistName,
		Date:              date,
		Time:              clock,
		ServiceType:       models.ServiceType(req.ServiceType),
		Status:            models.EntryStatus(req.Status),
		AbsenceCategory:   models.AbsenceCategory(req.AbsenceCategory),
		AbsenceReason:     req.AbsenceReason,
		Note:              req.Note,
		IsPaid:            req.IsPaid,
		PaymentDueThisDay: req.PaymentDueThisDay,
		PaymentDueType:    models.PaymentType(req.PaymentDueType),
	}

	if entry.PaidAmount, err = parseAmount(req.PaidAmount, "paid_amount"); err != nil {
		return models.ScheduleEntry{}, nil, err
	}
	if entry.PaymentDueAmount, err = parseAmount(req.PaymentDueAmount, "payment_due_amount"); err != nil {
		return models.ScheduleEntry{}, nil, err
	}
	if entry.IsPaid {
		if entry.PaidDate, err = parsePaidDate(req.PaidDate, date); err != nil {
			return models.ScheduleEntry{}, nil, err
		}
	}
	entry.SetCreatedAtUpdatedAt()

	if req.Billing == nil {
		return entry, nil, nil
	}
	billing, err := mapBillingOverrides(req.Billing)
	if err != nil {
		return models.ScheduleEntry{}, nil, err
	}
	return entry, &billing, nil
}

func mapBillingOverrides(req *requests.BillingOverrides) (models.Billing, error) {
	detailed := models.PaymentTypeDetailed(req.PaymentTypeDetailed)
	billing := models.Billing{
		PaymentType:             detailed.PaymentType(),
		PaymentTypeDetailed:     detailed,
		SessionsCompleted:       1,
		TotalSessions:           detailed.TotalSessions(),
		PaymentMethod:           models.PaymentMethod(req.PaymentMethod),
		PrepaidSubscriptionType: models.PrepaidSize(req.PrepaidSubscriptionType),
	}
	if req.SessionsCompleted != nil {
		billing.SessionsCompleted = *req.SessionsCompleted
	}

	var err error
	if billing.PaymentAmount, err = parseAmount(req.PaymentAmount, "payment_amount"); err != nil {
		return models.Billing{}, err
	}
	if billing.SubscriptionCost, err = parseAmount(req.SubscriptionCost, "subscription_cost"); err != nil {
		return models.Billing{}, err
	}
	return billing, nil
}

// ApplyUpdateScheduleEntryRequest patches entry with the fields present in req.
func ApplyUpdateScheduleEntryRequest(entry *models.ScheduleEntry, req *requests.UpdateScheduleEntry) error {
	if req.ClientName != nil {
		entry.ClientName = *req.ClientName
	}
	if req.SpecialistID != nil {
		entry.SpecialistID = strings.TrimSpace(*req.SpecialistID)
	}
	if req.SpecialistName != nil {
		entry.SpecialistName = *req.SpecialistName
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return exceptions.ErrInvalidFormat(err, "date")
		}
		entry.Date = date
	}
	if req.Time != nil {
		clock, err := models.ParseClock(*req.Time)
		if err != nil {
			return exceptions.ErrInvalidFormat(err, "time")
		}
		entry.Time = clock
	}
	if req.ServiceType != nil {
		entry.ServiceType = models.ServiceType(*req.ServiceType)
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}

	if req.Status != nil {
		entry.Status = models.EntryStatus(*req.Status)
		if entry.Status != models.StatusAbsent {
			entry.AbsenceCategory = models.AbsenceNone
			entry.AbsenceReason = ""
		}
	}
	if req.AbsenceCategory != nil {
		entry.AbsenceCategory = models.AbsenceCategory(*req.AbsenceCategory)
	}
	if req.AbsenceReason != nil {
		entry.AbsenceReason = *req.AbsenceReason
	}

	if req.PaymentTypeDetailed != nil {
		detailed := models.PaymentTypeDetailed(*req.PaymentTypeDetailed)
		entry.PaymentTypeDetailed = detailed
		entry.PaymentType = detailed.PaymentType()
		entry.TotalSessions = detailed.TotalSessions()
	}
	if req.SessionsCompleted != nil {
		entry.SessionsCompleted = *req.SessionsCompleted
	}
	if req.PaymentMethod != nil {
		entry.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.PrepaidSubscriptionType != nil {
		entry.PrepaidSubscriptionType = models.PrepaidSize(*req.PrepaidSubscriptionType)
	}

	var err error
	if req.PaymentAmount != nil {
		if entry.PaymentAmount, err = parseAmount(*req.PaymentAmount, "payment_amount"); err != nil {
			return err
		}
	}
	if req.SubscriptionCost != nil {
		if entry.SubscriptionCost, err = parseAmount(*req.SubscriptionCost, "subscription_cost"); err != nil {
			return err
		}
	}

	if req.PaymentDueThisDay != nil {
		entry.PaymentDueThisDay = *req.PaymentDueThisDay
	}
	if req.PaymentDueType != nil {
		entry.PaymentDueType = models.PaymentType(*req.PaymentDueType)
	}
	if req.PaymentDueAmount != nil {
		if entry.PaymentDueAmount, err = parseAmount(*req.PaymentDueAmount, "payment_due_amount"); err != nil {
			return err
		}
	}

	if req.IsPaid != nil && !*req.IsPaid {
		entry.ClearPaymentReceipt()
	} else if req.IsPaid != nil || entry.IsPaid {
		entry.IsPaid = true
		if req.PaidAmount != nil {
			if entry.PaidAmount, err = parseAmount(*req.PaidAmount, "paid_amount"); err != nil {
				return err
			}
		}
		if req.PaidDate != nil || entry.PaidDate == nil {
			var paidDate string
			if req.PaidDate != nil {
				paidDate = *req.PaidDate
			}
			if entry.PaidDate, err = parsePaidDate(paidDate, entry.Date); err != nil {
				return err
			}
		}
	}

	entry.SetUpdatedAt()
	return nil
}

// ApplyMarkScheduleEntryPaidRequest records the payment receipt on entry.
func ApplyMarkScheduleEntryPaidRequest(entry *models.ScheduleEntry, req *requests.MarkScheduleEntryPaid) error {
	amount, err := parseAmount(req.PaidAmount, "paid_amount")
	if err != nil {
		return err
	}
	paidDate, err := parsePaidDate(req.PaidDate, entry.Date)
	if err != nil {
		return err
	}
	entry.IsPaid = true
	entry.PaidAmount = amount
	entry.PaidDate = paidDate
	entry.SetUpdatedAt()
	return nil
}

func parseAmount(value, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, exceptions.ErrInvalidFormat(err, field)
	}
	return amount, nil
}

// parsePaidDate defaults a missing payment date to the session day.
func parsePaidDate(value string, sessionDate models.Date) (*models.Date, error) {
	if value == "" {
		paidDate := sessionDate
		return &paidDate, nil
	}
	paidDate, err := models.ParseDate(value)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "paid_date")
	}
	return &paidDate, nil
}
