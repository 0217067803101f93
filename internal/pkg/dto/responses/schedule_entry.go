package responses

import "time"

type ScheduleEntry struct {
	ID                           string    `json:"id"`
	ClientID                     string    `json:"client_id"`
	ClientName                   string    `json:"client_name,omitempty"`
	SpecialistID                 string    `json:"specialist_id"`
	SpecialistName               string    `json:"specialist_name,omitempty"`
	Date                         string    `json:"date"`
	Time                         string    `json:"time"`
	ServiceType                  string    `json:"service_type"`
	Status                       string    `json:"status"`
	AbsenceCategory              string    `json:"absence_category,omitempty"`
	AbsenceReason                string    `json:"absence_reason,omitempty"`
	PaymentType                  string    `json:"payment_type"`
	PaymentTypeDetailed          string    `json:"payment_type_detailed"`
	SessionsCompleted            int       `json:"sessions_completed"`
	TotalSessions                int       `json:"total_sessions"`
	PaymentAmount                string    `json:"payment_amount"`
	SubscriptionCost             string    `json:"subscription_cost"`
	PaymentMethod                string    `json:"payment_method,omitempty"`
	IsPaid                       bool      `json:"is_paid"`
	PaidAmount                   string    `json:"paid_amount"`
	PaidDate                     string    `json:"paid_date,omitempty"`
	PaymentDueThisDay            bool      `json:"payment_due_this_day"`
	PaymentDueType               string    `json:"payment_due_type,omitempty"`
	PaymentDueAmount             string    `json:"payment_due_amount"`
	PrepaidSubscriptionType      int       `json:"prepaid_subscription_type,omitempty"`
	PrepaidSubscriptionActivated bool      `json:"prepaid_subscription_activated"`
	Note                         string    `json:"note,omitempty"`
	CreatedAt                    time.Time `json:"created_at"`
	UpdatedAt                    time.Time `json:"updated_at"`
}

// UpdatedEntrySet is the result of an edit: the edited entry plus every
// other entry the ledger renumbered because of it.
type UpdatedEntrySet struct {
	Entry      ScheduleEntry   `json:"entry"`
	Activated  bool            `json:"activated"`
	Renumbered []ScheduleEntry `json:"renumbered"`
}

type ProjectedWeek struct {
	SourceWeekStart string          `json:"source_week_start"`
	NextWeekStart   string          `json:"next_week_start"`
	Appended        []ScheduleEntry `json:"appended"`
}

type ScheduleWeek struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Entries   []ScheduleEntry `json:"entries"`
}

type SubscriptionRun struct {
	State     string               `json:"state"`
	Reference *ScheduleEntry       `json:"reference,omitempty"`
	Next      *SubscriptionRunNext `json:"next,omitempty"`
}

type SubscriptionRunNext struct {
	PaymentType             string `json:"payment_type"`
	PaymentTypeDetailed     string `json:"payment_type_detailed"`
	SessionsCompleted       int    `json:"sessions_completed"`
	TotalSessions           int    `json:"total_sessions"`
	PaymentAmount           string `json:"payment_amount"`
	SubscriptionCost        string `json:"subscription_cost"`
	PaymentMethod           string `json:"payment_method,omitempty"`
	PrepaidSubscriptionType int    `json:"prepaid_subscription_type,omitempty"`
}
