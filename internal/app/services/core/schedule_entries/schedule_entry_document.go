package schedule_entries

import (
	"fmt"
	"schedule-ledger-service/internal/app/models"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scheduleEntryDocument is the stored shape of an entry. Dates and times are
// kept as "YYYY-MM-DD" and "HH:mm" so they sort lexically in queries.
type scheduleEntryDocument struct {
	ID             string `bson:"_id"`
	ClientID       string `bson:"client_id"`
	ClientName     string `bson:"client_name,omitempty"`
	SpecialistID   string `bson:"specialist_id"`
	SpecialistName string `bson:"specialist_name,omitempty"`

	Date        string `bson:"date"`
	Time        string `bson:"time"`
	ServiceType string `bson:"service_type"`

	Status          string `bson:"status"`
	AbsenceCategory string `bson:"absence_category,omitempty"`
	AbsenceReason   string `bson:"absence_reason,omitempty"`

	PaymentType         string `bson:"payment_type"`
	PaymentTypeDetailed string `bson:"payment_type_detailed"`
	SessionsCompleted   int    `bson:"sessions_completed"`
	TotalSessions       int    `bson:"total_sessions"`

	PaymentAmount    primitive.Decimal128 `bson:"payment_amount"`
	SubscriptionCost primitive.Decimal128 `bson:"subscription_cost"`
	PaymentMethod    string               `bson:"payment_method,omitempty"`

	IsPaid     bool                 `bson:"is_paid"`
	PaidAmount primitive.Decimal128 `bson:"paid_amount"`
	PaidDate   string               `bson:"paid_date,omitempty"`

	PaymentDueThisDay bool                 `bson:"payment_due_this_day"`
	PaymentDueType    string               `bson:"payment_due_type,omitempty"`
	PaymentDueAmount  primitive.Decimal128 `bson:"payment_due_amount"`

	PrepaidSubscriptionType      int  `bson:"prepaid_subscription_type"`
	PrepaidSubscriptionActivated bool `bson:"prepaid_subscription_activated"`

	Note string `bson:"note,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newScheduleEntryDocument(entry models.ScheduleEntry) (scheduleEntryDocument, error) {
	document := scheduleEntryDocument{
		ID:                           entry.ID,
		ClientID:                     entry.ClientID,
		ClientName:                   entry.ClientName,
		SpecialistID:                 entry.SpecialistID,
		SpecialistName:               entry.SpecialistName,
		Date:                         entry.Date.String(),
		Time:                         entry.Time.String(),
		ServiceType:                  string(entry.ServiceType),
		Status:                       string(entry.Status),
		AbsenceCategory:              string(entry.AbsenceCategory),
		AbsenceReason:                entry.AbsenceReason,
		PaymentType:                  string(entry.PaymentType),
		PaymentTypeDetailed:          string(entry.PaymentTypeDetailed),
		SessionsCompleted:            entry.SessionsCompleted,
		TotalSessions:                entry.TotalSessions,
		PaymentMethod:                string(entry.PaymentMethod),
		IsPaid:                       entry.IsPaid,
		PaymentDueThisDay:            entry.PaymentDueThisDay,
		PaymentDueType:               string(entry.PaymentDueType),
		PrepaidSubscriptionType:      int(entry.PrepaidSubscriptionType),
		PrepaidSubscriptionActivated: entry.PrepaidSubscriptionActivated,
		Note:                         entry.Note,
		CreatedAt:                    entry.CreatedAt,
		UpdatedAt:                    entry.UpdatedAt,
	}
	if entry.PaidDate != nil {
		document.PaidDate = entry.PaidDate.String()
	}

	amounts := []struct {
		source decimal.Decimal
		target *primitive.Decimal128
	}{
		{entry.PaymentAmount, &document.PaymentAmount},
		{entry.SubscriptionCost, &document.SubscriptionCost},
		{entry.PaidAmount, &document.PaidAmount},
		{entry.PaymentDueAmount, &document.PaymentDueAmount},
	}
	for _, amount := range amounts {
		converted, err := primitive.ParseDecimal128(amount.source.String())
		if err != nil {
			return scheduleEntryDocument{}, fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		*amount.target = converted
	}
	return document, nil
}

func (d scheduleEntryDocument) toModel() (models.ScheduleEntry, error) {
	date, err := models.ParseDate(d.Date)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("entry %s: %w", d.ID, err)
	}
	clock, err := models.ParseClock(d.Time)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("entry %s: %w", d.ID, err)
	}

	entry := models.ScheduleEntry{
		ID:                           d.ID,
		ClientID:                     d.ClientID,
		ClientName:                   d.ClientName,
		SpecialistID:                 d.SpecialistID,
		SpecialistName:               d.SpecialistName,
		Date:                         date,
		Time:                         clock,
		ServiceType:                  models.ServiceType(d.ServiceType),
		Status:                       models.EntryStatus(d.Status),
		AbsenceCategory:              models.AbsenceCategory(d.AbsenceCategory),
		AbsenceReason:                d.AbsenceReason,
		PaymentType:                  models.PaymentType(d.PaymentType),
		PaymentTypeDetailed:          models.PaymentTypeDetailed(d.PaymentTypeDetailed),
		SessionsCompleted:            d.SessionsCompleted,
		TotalSessions:                d.TotalSessions,
		PaymentMethod:                models.PaymentMethod(d.PaymentMethod),
		IsPaid:                       d.IsPaid,
		PaymentDueThisDay:            d.PaymentDueThisDay,
		PaymentDueType:               models.PaymentType(d.PaymentDueType),
		PrepaidSubscriptionType:      models.PrepaidSize(d.PrepaidSubscriptionType),
		PrepaidSubscriptionActivated: d.PrepaidSubscriptionActivated,
		Note:                         d.Note,
	}
	entry.CreatedAt = d.CreatedAt
	entry.UpdatedAt = d.UpdatedAt

	if d.PaidDate != "" {
		paidDate, err := models.ParseDate(d.PaidDate)
		if err != nil {
			return models.ScheduleEntry{}, fmt.Errorf("entry %s: %w", d.ID, err)
		}
		entry.PaidDate = &paidDate
	}

	amounts := []struct {
		source primitive.Decimal128
		target *decimal.Decimal
	}{
		{d.PaymentAmount, &entry.PaymentAmount},
		{d.SubscriptionCost, &entry.SubscriptionCost},
		{d.PaidAmount, &entry.PaidAmount},
		{d.PaymentDueAmount, &entry.PaymentDueAmount},
	}
	for _, amount := range amounts {
		converted, err := decimal.NewFromString(amount.source.String())
		if err != nil {
			return models.ScheduleEntry{}, fmt.Errorf("entry %s: %w", d.ID, err)
		}
		*amount.target = converted
	}
	return entry, nil
}
