package models

import (
	"schedule-ledger-service/internal/pkg/dto/responses"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceTypeUnset             ServiceType = ""
	ServiceTypeDiagnostics       ServiceType = "diagnostics"
	ServiceTypeConsultation      ServiceType = "consultation"
	ServiceTypeSession           ServiceType = "session"
	ServiceTypeGroupSession      ServiceType = "group_session"
	ServiceTypeRepeatDiagnostics ServiceType = "repeat_diagnostics"
)

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeDiagnostics, ServiceTypeConsultation, ServiceTypeSession,
		ServiceTypeGroupSession, ServiceTypeRepeatDiagnostics:
		return true
	}
	return false
}

type EntryStatus string

const (
	StatusScheduled EntryStatus = "scheduled"
	StatusCompleted EntryStatus = "completed"
	StatusAbsent    EntryStatus = "absent"
)

func (s EntryStatus) IsValid() bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusAbsent
}

type AbsenceCategory string

const (
	AbsenceNone      AbsenceCategory = ""
	AbsenceSick      AbsenceCategory = "sick"
	AbsenceFamily    AbsenceCategory = "family"
	AbsenceCancelled AbsenceCategory = "cancelled"
	AbsenceOther     AbsenceCategory = "other"
)

func (c AbsenceCategory) IsValid() bool {
	switch c {
	case AbsenceSick, AbsenceFamily, AbsenceCancelled, AbsenceOther:
		return true
	}
	return false
}

type PaymentType string

const (
	PaymentTypeSingle       PaymentType = "single"
	PaymentTypeSubscription PaymentType = "subscription"
)

func (p PaymentType) IsValid() bool {
	return p == PaymentTypeSingle || p == PaymentTypeSubscription
}

type PaymentTypeDetailed string

const (
	PaymentDetailedSingle         PaymentTypeDetailed = "single"
	PaymentDetailedSubscription4  PaymentTypeDetailed = "subscription4"
	PaymentDetailedSubscription8  PaymentTypeDetailed = "subscription8"
	PaymentDetailedSubscription12 PaymentTypeDetailed = "subscription12"
)

// TotalSessions is the run size implied by the detailed type, 0 when unknown.
func (p PaymentTypeDetailed) TotalSessions() int {
	switch p {
	case PaymentDetailedSingle:
		return 1
	case PaymentDetailedSubscription4:
		return 4
	case PaymentDetailedSubscription8:
		return 8
	case PaymentDetailedSubscription12:
		return 12
	}
	return 0
}

func (p PaymentTypeDetailed) PaymentType() PaymentType {
	if p == PaymentDetailedSingle {
		return PaymentTypeSingle
	}
	return PaymentTypeSubscription
}

func (p PaymentTypeDetailed) IsValid() bool {
	return p.TotalSessions() > 0
}

type PaymentMethod string

const (
	PaymentMethodUnset PaymentMethod = ""
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodUnset || m == PaymentMethodCash || m == PaymentMethodCard
}

// PrepaidSize is the size of a bundle bought ahead of the current run's
// completion. Zero means nothing is queued.
type PrepaidSize int

const (
	PrepaidNone PrepaidSize = 0
	Prepaid4    PrepaidSize = 4
	Prepaid8    PrepaidSize = 8
	Prepaid12   PrepaidSize = 12
)

func (p PrepaidSize) IsSet() bool {
	return p != PrepaidNone
}

func (p PrepaidSize) IsValid() bool {
	return p == PrepaidNone || p == Prepaid4 || p == Prepaid8 || p == Prepaid12
}

func (p PrepaidSize) Detailed() PaymentTypeDetailed {
	switch p {
	case Prepaid4:
		return PaymentDetailedSubscription4
	case Prepaid8:
		return PaymentDetailedSubscription8
	case Prepaid12:
		return PaymentDetailedSubscription12
	}
	return PaymentDetailedSingle
}

type ScheduleEntry struct {
	ID             string `json:"id"`
	ClientID       string `json:"clientId"`
	ClientName     string `json:"clientName"`
	SpecialistID   string `json:"specialistId"`
	SpecialistName string `json:"specialistName"`

	Date        Date        `json:"date"`
	Time        Clock       `json:"time"`
	ServiceType ServiceType `json:"serviceType"`

	Status          EntryStatus     `json:"status"`
	AbsenceCategory AbsenceCategory `json:"absenceCategory,omitempty"`
	AbsenceReason   string          `json:"absenceReason,omitempty"`

	PaymentType         PaymentType         `json:"paymentType"`
	PaymentTypeDetailed PaymentTypeDetailed `json:"paymentTypeDetailed"`
	SessionsCompleted   int                 `json:"sessionsCompleted"`
	TotalSessions       int                 `json:"totalSessions"`

	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	SubscriptionCost decimal.Decimal `json:"subscriptionCost"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod,omitempty"`

	IsPaid     bool            `json:"isPaid"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	PaidDate   *Date           `json:"paidDate,omitempty"`

	PaymentDueThisDay bool            `json:"paymentDueThisDay"`
	PaymentDueType    PaymentType     `json:"paymentDueType,omitempty"`
	PaymentDueAmount  decimal.Decimal `json:"paymentDueAmount"`

	PrepaidSubscriptionType      PrepaidSize `json:"prepaidSubscriptionType"`
	PrepaidSubscriptionActivated bool        `json:"prepaidSubscriptionActivated"`

	Note string `json:"note,omitempty"`

	AuditTimestamps
}

func (e ScheduleEntry) Key() SortKey {
	return SortKey{Date: e.Date, Time: e.Time}
}

func (e ScheduleEntry) IsSubscription() bool {
	return e.PaymentType == PaymentTypeSubscription
}

func (e ScheduleEntry) IsSickAbsence() bool {
	return e.Status == StatusAbsent && e.AbsenceCategory == AbsenceSick
}

// IsRunComplete reports a subscription entry sitting on the last session of
// its run.
func (e ScheduleEntry) IsRunComplete() bool {
	return e.IsSubscription() && e.TotalSessions > 0 && e.SessionsCompleted >= e.TotalSessions
}

// Clone returns a copy that shares no pointers with e.
func (e ScheduleEntry) Clone() ScheduleEntry {
	if e.PaidDate != nil {
		paidDate := *e.PaidDate
		e.PaidDate = &paidDate
	}
	return e
}

// ClearPaymentReceipt drops the receipt without touching the billing
// classification.
func (e *ScheduleEntry) ClearPaymentReceipt() {
	e.IsPaid = false
	e.PaidAmount = decimal.Zero
	e.PaidDate = nil
}

func (e *ScheduleEntry) Billing() Billing {
	return Billing{
		PaymentType:                  e.PaymentType,
		PaymentTypeDetailed:          e.PaymentTypeDetailed,
		SessionsCompleted:            e.SessionsCompleted,
		TotalSessions:                e.TotalSessions,
		PaymentAmount:                e.PaymentAmount,
		SubscriptionCost:             e.SubscriptionCost,
		PaymentMethod:                e.PaymentMethod,
		PrepaidSubscriptionType:      e.PrepaidSubscriptionType,
		PrepaidSubscriptionActivated: e.PrepaidSubscriptionActivated,
	}
}

// ApplyBilling overwrites the classification, progress and money fields.
// Receipt, reminder and scheduling fields are left alone.
func (e *ScheduleEntry) ApplyBilling(billing Billing) {
	e.PaymentType = billing.PaymentType
	e.PaymentTypeDetailed = billing.PaymentTypeDetailed
	e.SessionsCompleted = billing.SessionsCompleted
	e.TotalSessions = billing.TotalSessions
	e.PaymentAmount = billing.PaymentAmount
	e.SubscriptionCost = billing.SubscriptionCost
	e.PaymentMethod = billing.PaymentMethod
	e.PrepaidSubscriptionType = billing.PrepaidSubscriptionType
	e.PrepaidSubscriptionActivated = billing.PrepaidSubscriptionActivated
}

func (e ScheduleEntry) ConvertIntoResponse() responses.ScheduleEntry {
	response := responses.ScheduleEntry{
		ID:                           e.ID,
		ClientID:                     e.ClientID,
		ClientName:                   e.ClientName,
		SpecialistID:                 e.SpecialistID,
		SpecialistName:               e.SpecialistName,
		Date:                         e.Date.String(),
		Time:                         e.Time.String(),
		ServiceType:                  string(e.ServiceType),
		Status:                       string(e.Status),
		AbsenceCategory:              string(e.AbsenceCategory),
		AbsenceReason:                e.AbsenceReason,
		PaymentType:                  string(e.PaymentType),
		PaymentTypeDetailed:          string(e.PaymentTypeDetailed),
		SessionsCompleted:            e.SessionsCompleted,
		TotalSessions:                e.TotalSessions,
		PaymentAmount:                e.PaymentAmount.StringFixed(2),
		SubscriptionCost:             e.SubscriptionCost.StringFixed(2),
		PaymentMethod:                string(e.PaymentMethod),
		IsPaid:                       e.IsPaid,
		PaidAmount:                   e.PaidAmount.StringFixed(2),
		PaymentDueThisDay:            e.PaymentDueThisDay,
		PaymentDueType:               string(e.PaymentDueType),
		PaymentDueAmount:             e.PaymentDueAmount.StringFixed(2),
		PrepaidSubscriptionType:      int(e.PrepaidSubscriptionType),
		PrepaidSubscriptionActivated: e.PrepaidSubscriptionActivated,
		Note:                         e.Note,
		CreatedAt:                    e.CreatedAt,
		UpdatedAt:                    e.UpdatedAt,
	}
	if e.PaidDate != nil {
		response.PaidDate = e.PaidDate.String()
	}
	return response
}

// Billing is the part of an entry that the ledger derives from the client's
// history rather than from the form.
type Billing struct {
	PaymentType                  PaymentType
	PaymentTypeDetailed          PaymentTypeDetailed
	SessionsCompleted            int
	TotalSessions                int
	PaymentAmount                decimal.Decimal
	SubscriptionCost             decimal.Decimal
	PaymentMethod                PaymentMethod
	PrepaidSubscriptionType      PrepaidSize
	PrepaidSubscriptionActivated bool
}

// PlaceholderBilling is the reset state written after a run finishes with no
// renewal queued.
func PlaceholderBilling() Billing {
	return Billing{
		PaymentType:         PaymentTypeSingle,
		PaymentTypeDetailed: PaymentDetailedSingle,
		SessionsCompleted:   0,
		TotalSessions:       1,
		PaymentAmount:       decimal.Zero,
		SubscriptionCost:    decimal.Zero,
	}
}
