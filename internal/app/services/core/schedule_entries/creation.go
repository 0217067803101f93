package schedule_entries

import (
	"schedule-ledger-service/internal/app/models"

	"github.com/shopspring/decimal"
)

// NewEntryDraft is what staff fill in when scheduling a session. Billing is
// only honoured when the client has no run to continue.
type NewEntryDraft struct {
	Entry   models.ScheduleEntry
	Billing *models.Billing
}

// DefaultBilling is used for a fresh client when the form carries no billing.
func DefaultBilling() models.Billing {
	return models.Billing{
		PaymentType:         models.PaymentTypeSingle,
		PaymentTypeDetailed: models.PaymentDetailedSingle,
		SessionsCompleted:   1,
		TotalSessions:       1,
		PaymentAmount:       decimal.Zero,
		SubscriptionCost:    decimal.Zero,
	}
}

// BuildEntry merges the draft with the client's run state and returns the
// entry to append. snapshot is not modified.
func BuildEntry(snapshot []models.ScheduleEntry, draft NewEntryDraft) (models.ScheduleEntry, models.RunState, error) {
	entry := draft.Entry.Clone()
	if err := validateDraft(entry); err != nil {
		return models.ScheduleEntry{}, models.RunState{}, err
	}
	if entry.Status == "" {
		entry.Status = models.StatusScheduled
	}

	state := ResolveRunState(snapshot, entry.ClientID, entry.Key())
	if state.Kind == models.RunFresh {
		billing := DefaultBilling()
		if draft.Billing != nil {
			billing = *draft.Billing
		}
		entry.ApplyBilling(billing)
	} else {
		state.ApplyTo(&entry)
	}

	if err := ValidateEntry(entry); err != nil {
		return models.ScheduleEntry{}, models.RunState{}, err
	}
	return entry, state, nil
}

func validateDraft(entry models.ScheduleEntry) error {
	if entry.ClientID == "" {
		return models.ErrMissingClient
	}
	if entry.Date.IsZero() {
		return models.ErrMissingDate
	}
	if entry.ServiceType == models.ServiceTypeUnset {
		return models.ErrMissingServiceType
	}
	if !entry.ServiceType.IsValid() {
		return models.ErrUnknownServiceType
	}
	return nil
}

// ValidateEntry checks the rules every stored entry must satisfy on its own.
func ValidateEntry(entry models.ScheduleEntry) error {
	if err := validateDraft(entry); err != nil {
		return err
	}
	if entry.Status == models.StatusAbsent && entry.AbsenceCategory == models.AbsenceNone {
		return models.ErrMissingAbsenceCategory
	}
	if entry.Status != models.StatusAbsent && entry.AbsenceCategory != models.AbsenceNone {
		return models.ErrUnexpectedAbsence
	}
	return ValidateBilling(entry.Billing())
}

func ValidateBilling(billing models.Billing) error {
	if billing.TotalSessions <= 0 {
		return models.ErrNonPositiveTotalSessions
	}
	if billing.SessionsCompleted < 0 {
		return models.ErrNegativeSessions
	}
	if billing.SessionsCompleted > billing.TotalSessions {
		return models.ErrSessionsExceedTotal
	}
	if billing.PaymentType == models.PaymentTypeSingle && billing.TotalSessions != 1 {
		return models.ErrSingleRunSize
	}
	return nil
}
