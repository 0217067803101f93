package schedule_entries

import (
	"fmt"
	"schedule-ledger-service/internal/app/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// monday is the start of the week most fixtures live in.
var monday = models.NewDate(2024, time.October, 14)

type entryOption func(*models.ScheduleEntry)

func mustClock(value string) models.Clock {
	clock, err := models.ParseClock(value)
	if err != nil {
		panic(err)
	}
	return clock
}

func keyAt(date models.Date, clock string) models.SortKey {
	return models.SortKey{Date: date, Time: mustClock(clock)}
}

func newEntry(id, clientID string, date models.Date, clock string, options ...entryOption) models.ScheduleEntry {
	entry := models.ScheduleEntry{
		ID:                  id,
		ClientID:            clientID,
		SpecialistID:        "specialist-1",
		Date:                date,
		Time:                mustClock(clock),
		ServiceType:         models.ServiceTypeSession,
		Status:              models.StatusScheduled,
		PaymentType:         models.PaymentTypeSingle,
		PaymentTypeDetailed: models.PaymentDetailedSingle,
		SessionsCompleted:   1,
		TotalSessions:       1,
		PaymentAmount:       decimal.NewFromInt(500),
	}
	for _, option := range options {
		option(&entry)
	}
	return entry
}

func withSubscription(completed, total int) entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.PaymentType = models.PaymentTypeSubscription
		entry.PaymentTypeDetailed = models.PaymentTypeDetailed(fmt.Sprintf("subscription%d", total))
		entry.SessionsCompleted = completed
		entry.TotalSessions = total
		entry.PaymentAmount = decimal.NewFromInt(450)
		entry.SubscriptionCost = decimal.NewFromInt(int64(450 * total))
		entry.PaymentMethod = models.PaymentMethodCard
	}
}

func withPrepaid(size models.PrepaidSize) entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.PrepaidSubscriptionType = size
	}
}

// withRollover is the first session of a run opened from a queued prepaid.
func withRollover(completed, total int) entryOption {
	return func(entry *models.ScheduleEntry) {
		withSubscription(completed, total)(entry)
		entry.PrepaidSubscriptionActivated = true
	}
}

func withSickAbsence() entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.Status = models.StatusAbsent
		entry.AbsenceCategory = models.AbsenceSick
		entry.AbsenceReason = "flu"
	}
}

func withAbsence(category models.AbsenceCategory) entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.Status = models.StatusAbsent
		entry.AbsenceCategory = category
	}
}

func withPaymentDue(amount int64) entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.PaymentDueThisDay = true
		entry.PaymentDueType = models.PaymentTypeSubscription
		entry.PaymentDueAmount = decimal.NewFromInt(amount)
	}
}

func withPaid(amount int64, paidDate models.Date) entryOption {
	return func(entry *models.ScheduleEntry) {
		entry.IsPaid = true
		entry.PaidAmount = decimal.NewFromInt(amount)
		entry.PaidDate = &paidDate
	}
}

// sequentialIDs hands out "p1", "p2", ... for projected copies.
func sequentialIDs() func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("p%d", next)
	}
}

func clientEntries(entries []models.ScheduleEntry, clientID string) []models.ScheduleEntry {
	return NewClientLedger(entries, clientID).Entries()
}

func assertLedgerInvariants(t *testing.T, entries []models.ScheduleEntry) {
	t.Helper()
	require.Empty(t, CheckLedger(entries), "ledger should satisfy every run rule")
}

func progressOf(entries []models.ScheduleEntry) []string {
	progress := make([]string, 0, len(entries))
	for _, entry := range entries {
		progress = append(progress, fmt.Sprintf("%s %d/%d", entry.PaymentType, entry.SessionsCompleted, entry.TotalSessions))
	}
	return progress
}
