package models

import (
	"schedule-ledger-service/internal/pkg/dto/responses"

	"github.com/shopspring/decimal"
)

type RunStateKind string

const (
	// RunFresh: no usable history, the caller's values stand.
	RunFresh RunStateKind = "fresh"
	// RunActive: the reference run still has sessions left.
	RunActive RunStateKind = "active"
	// RunRollover: the reference run is complete and a prepaid bundle starts next.
	RunRollover RunStateKind = "rollover"
	// RunPlaceholder: the reference run is complete and nothing is queued.
	RunPlaceholder RunStateKind = "placeholder"
)

// RunState is the resolved subscription position for the next entry of a
// client. Next is only meaningful when Kind is not RunFresh.
type RunState struct {
	Kind      RunStateKind
	Reference *ScheduleEntry
	Next      Billing
}

func FreshRunState() RunState {
	return RunState{Kind: RunFresh}
}

// DeriveRunState applies the continuation rules to a reference entry.
func DeriveRunState(reference ScheduleEntry) RunState {
	ref := reference.Clone()
	state := RunState{Reference: &ref}

	switch {
	case !ref.IsSubscription():
		state.Kind = RunFresh
	case ref.SessionsCompleted < ref.TotalSessions:
		state.Kind = RunActive
		state.Next = ref.Billing()
		state.Next.SessionsCompleted = ref.SessionsCompleted + 1
		state.Next.PrepaidSubscriptionActivated = false
	case ref.PrepaidSubscriptionType.IsSet():
		state.Kind = RunRollover
		state.Next = RolloverBilling(ref)
	default:
		state.Kind = RunPlaceholder
		state.Next = PlaceholderBilling()
	}
	return state
}

// RolloverBilling opens the queued bundle as a new run carrying the money
// fields of the finished one.
func RolloverBilling(finished ScheduleEntry) Billing {
	size := finished.PrepaidSubscriptionType
	return Billing{
		PaymentType:                  PaymentTypeSubscription,
		PaymentTypeDetailed:          size.Detailed(),
		SessionsCompleted:            1,
		TotalSessions:                int(size),
		PaymentAmount:                finished.PaymentAmount,
		SubscriptionCost:             finished.SubscriptionCost,
		PaymentMethod:                finished.PaymentMethod,
		PrepaidSubscriptionType:      PrepaidNone,
		PrepaidSubscriptionActivated: true,
	}
}

// ApplyTo writes the resolved billing onto entry. Fresh states leave the
// entry untouched.
func (s RunState) ApplyTo(entry *ScheduleEntry) {
	if s.Kind == RunFresh {
		return
	}
	entry.ApplyBilling(s.Next)
	if s.Kind == RunPlaceholder {
		entry.PaymentDueThisDay = false
		entry.PaymentDueType = ""
		entry.PaymentDueAmount = decimal.Zero
	}
}

func (s RunState) ConvertIntoResponse() responses.SubscriptionRun {
	response := responses.SubscriptionRun{
		State: string(s.Kind),
	}
	if s.Reference != nil {
		reference := s.Reference.ConvertIntoResponse()
		response.Reference = &reference
	}
	if s.Kind != RunFresh {
		response.Next = &responses.SubscriptionRunNext{
			PaymentType:             string(s.Next.PaymentType),
			PaymentTypeDetailed:     string(s.Next.PaymentTypeDetailed),
			SessionsCompleted:       s.Next.SessionsCompleted,
			TotalSessions:           s.Next.TotalSessions,
			PaymentAmount:           s.Next.PaymentAmount.StringFixed(2),
			SubscriptionCost:        s.Next.SubscriptionCost.StringFixed(2),
			PaymentMethod:           string(s.Next.PaymentMethod),
			PrepaidSubscriptionType: int(s.Next.PrepaidSubscriptionType),
		}
	}
	return response
}
