package schedule_entries

import (
	"fmt"
	"schedule-ledger-service/internal/app/models"
	"sort"
)

// CheckLedger lists every broken consistency rule in snapshot. It never
// modifies the entries.
//
// Runs are read per client in chronological order: a subscription entry with
// sessionsCompleted 1 opens a run and later entries continue it. A sick
// absence may or may not have consumed a session, so it may repeat the last
// number and the next session may either reuse or skip the sick one's number.
// The entry after a finished run must open the queued prepaid run or be a
// zeroed placeholder.
func CheckLedger(snapshot []models.ScheduleEntry) []models.LedgerViolation {
	clientIDs := make(map[string]struct{})
	for _, entry := range snapshot {
		clientIDs[entry.ClientID] = struct{}{}
	}
	ordered := make([]string, 0, len(clientIDs))
	for clientID := range clientIDs {
		ordered = append(ordered, clientID)
	}
	sort.Strings(ordered)

	var violations []models.LedgerViolation
	for _, clientID := range ordered {
		violations = append(violations, checkClient(NewClientLedger(snapshot, clientID))...)
	}
	return violations
}

type auditedRun struct {
	total     int
	base      int
	highest   int
	sicks     int
	openedBy  string
	queued    models.PrepaidSize
	succeeded bool
}

func (r *auditedRun) finished() bool {
	return r.highest >= r.total
}

// continues reports whether entry still belongs to the finished run: a sick
// repeat of the last number, or the session reusing a sick one's number.
func (r *auditedRun) continues(entry *models.ScheduleEntry) bool {
	if !entry.IsSubscription() || entry.TotalSessions != r.total || entry.SessionsCompleted != r.total {
		return false
	}
	return entry.IsSickAbsence() || r.base < r.total
}

func successionProblem(entry *models.ScheduleEntry, queued models.PrepaidSize) string {
	if queued.IsSet() {
		if entry.IsSubscription() && entry.SessionsCompleted == 1 && entry.TotalSessions == int(queued) && entry.PrepaidSubscriptionActivated {
			return ""
		}
		return fmt.Sprintf("expected the queued %d-session run to open, found %s %d/%d",
			int(queued), entry.PaymentType, entry.SessionsCompleted, entry.TotalSessions)
	}
	if !entry.IsSubscription() && entry.SessionsCompleted == 0 && entry.PaymentAmount.IsZero() && entry.SubscriptionCost.IsZero() {
		return ""
	}
	return fmt.Sprintf("expected a placeholder, found %s %d/%d charging %s",
		entry.PaymentType, entry.SessionsCompleted, entry.TotalSessions, entry.PaymentAmount.String())
}

func checkClient(ledger *ClientLedger) []models.LedgerViolation {
	var violations []models.LedgerViolation
	report := func(kind models.ViolationKind, entryID, format string, args ...interface{}) {
		violations = append(violations, models.LedgerViolation{
			Kind:     kind,
			ClientID: ledger.ClientID(),
			EntryID:  entryID,
			Detail:   fmt.Sprintf(format, args...),
		})
	}

	var run *auditedRun
	for i := 0; i < ledger.Len(); i++ {
		entry := ledger.At(i)
		progress := entry.SessionsCompleted

		if progress > entry.TotalSessions {
			report(models.ViolationProgressOverflow, entry.ID, "sessions completed %d above total %d", progress, entry.TotalSessions)
			continue
		}
		if run != nil && run.finished() && !run.succeeded && !run.continues(entry) {
			run.succeeded = true
			if problem := successionProblem(entry, run.queued); problem != "" {
				report(models.ViolationRunSuccession, entry.ID, "%s", problem)
			}
		}
		if !entry.IsSubscription() {
			if entry.TotalSessions != 1 || progress < 0 || progress > 1 {
				report(models.ViolationSingleShape, entry.ID, "single entry at %d/%d", progress, entry.TotalSessions)
			}
			continue
		}

		sick := entry.IsSickAbsence()
		repeatsOpening := sick && run != nil && run.base <= 1
		if progress == 1 && !repeatsOpening && run != nil {
			if !run.finished() {
				report(models.ViolationOverlappingRuns, entry.ID, "run opened by %s still at %d/%d", run.openedBy, run.highest, run.total)
			}
			run = nil
		}
		if run == nil {
			if progress != 1 {
				report(models.ViolationRunSequence, entry.ID, "run starts at %d instead of 1", progress)
			}
			run = &auditedRun{total: entry.TotalSessions, base: progress, highest: progress, openedBy: entry.ID}
			if progress == run.total {
				run.queued = entry.PrepaidSubscriptionType
			}
			continue
		}

		if entry.TotalSessions != run.total {
			report(models.ViolationRunSequence, entry.ID, "total %d inside a run of %d", entry.TotalSessions, run.total)
		}

		lowest := run.base + 1
		if sick {
			lowest = run.base
		}
		if progress < lowest || progress > run.base+1+run.sicks {
			report(models.ViolationRunSequence, entry.ID, "expected session %d, found %d", run.base+1, progress)
		}
		if progress > run.highest {
			run.highest = progress
		}
		if progress == run.total {
			run.queued = entry.PrepaidSubscriptionType
		}
		if sick {
			run.sicks++
			continue
		}
		run.base = progress
		run.sicks = 0
	}
	return violations
}
