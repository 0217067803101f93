package schedule_entries

import "schedule-ledger-service/internal/app/models"

// EditOutcome is the ledger after one entry edit.
type EditOutcome struct {
	Snapshot   []models.ScheduleEntry
	Entry      models.ScheduleEntry
	Activated  bool
	Renumbered []models.ScheduleEntry
}

// ApplyEdit stores edited over the entry with the same id. When the edit is
// the payment of a client's first subscription, the client's entries from the
// payment onward are renumbered into that run.
func ApplyEdit(snapshot []models.ScheduleEntry, edited models.ScheduleEntry) (EditOutcome, error) {
	index := findEntryIndex(snapshot, edited.ID)
	if index < 0 {
		return EditOutcome{}, models.ErrEntryNotFound
	}
	if err := ValidateEntry(edited); err != nil {
		return EditOutcome{}, err
	}

	working := cloneEntries(snapshot)
	previous := working[index]
	working[index] = edited.Clone()

	outcome := EditOutcome{Snapshot: working}
	ledger := NewClientLedger(working, edited.ClientID)
	if !activatesFirstRun(ledger, previous, edited) {
		outcome.Entry = working[index].Clone()
		return outcome, nil
	}

	outcome.Activated = true
	for _, touched := range renumberRun(ledger, edited) {
		if touched.ID == edited.ID {
			continue
		}
		outcome.Renumbered = append(outcome.Renumbered, touched.Clone())
	}
	outcome.Entry = working[index].Clone()
	return outcome, nil
}

func activatesFirstRun(ledger *ClientLedger, previous, edited models.ScheduleEntry) bool {
	if previous.IsPaid || !edited.IsPaid || !edited.IsSubscription() {
		return false
	}
	return !ledger.HasSubscriptionBefore(edited.Date, edited.ID)
}

// activationAnchor is the first day that belongs to the activated run. A
// payment recorded after the session still starts the run at the session.
func activationAnchor(edited models.ScheduleEntry) models.Date {
	if edited.PaidDate != nil && edited.PaidDate.Before(edited.Date) {
		return *edited.PaidDate
	}
	return edited.Date
}

// renumberRun walks the client's entries from the anchor and numbers the
// first TotalSessions of them 1..TotalSessions. Later entries are untouched.
func renumberRun(ledger *ClientLedger, edited models.ScheduleEntry) []*models.ScheduleEntry {
	walk := ledger.From(activationAnchor(edited))
	if len(walk) > edited.TotalSessions {
		walk = walk[:edited.TotalSessions]
	}
	for position, entry := range walk {
		entry.PaymentType = models.PaymentTypeSubscription
		entry.PaymentTypeDetailed = edited.PaymentTypeDetailed
		entry.TotalSessions = edited.TotalSessions
		entry.SessionsCompleted = position + 1
		entry.PaymentAmount = edited.PaymentAmount
		entry.SubscriptionCost = edited.SubscriptionCost
		entry.PaymentMethod = edited.PaymentMethod
		entry.SetUpdatedAt()
	}
	return walk
}
