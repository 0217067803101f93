package requests

type CreateScheduleEntry struct {
	ClientID       string `json:"client_id" validate:"required"`
	ClientName     string `json:"client_name"`
	SpecialistID   string `json:"specialist_id" validate:"required"`
	SpecialistName string `json:"specialist_name"`
	Date           string `json:"date" validate:"required,date_only"`
	Time           string `json:"time" validate:"required,clock"`
	// ServiceType is checked by the ledger so a missing value gets its own message.
	ServiceType     string `json:"service_type" validate:"omitempty,service_type"`
	Status          string `json:"status" validate:"omitempty,oneof=scheduled completed absent"`
	AbsenceCategory string `json:"absence_category" validate:"omitempty,oneof=sick family cancelled other"`
	AbsenceReason   string `json:"absence_reason" validate:"max=500"`
	Note            string `json:"note" validate:"max=2000"`

	IsPaid     bool   `json:"is_paid"`
	PaidAmount string `json:"paid_amount" validate:"omitempty,decimal"`
	PaidDate   string `json:"paid_date" validate:"omitempty,date_only"`

	PaymentDueThisDay bool   `json:"payment_due_this_day"`
	PaymentDueType    string `json:"payment_due_type" validate:"omitempty,oneof=single subscription"`
	PaymentDueAmount  string `json:"payment_due_amount" validate:"omitempty,decimal"`

	// Billing is only honoured when the client has no run to continue.
	Billing *BillingOverrides `json:"billing"`
}

type BillingOverrides struct {
	PaymentTypeDetailed     string `json:"payment_type_detailed" validate:"required,payment_type_detailed"`
	SessionsCompleted       *int   `json:"sessions_completed" validate:"omitempty,gte=0,lte=12"`
	PaymentAmount           string `json:"payment_amount" validate:"omitempty,decimal"`
	SubscriptionCost        string `json:"subscription_cost" validate:"omitempty,decimal"`
	PaymentMethod           string `json:"payment_method" validate:"omitempty,oneof=cash card"`
	PrepaidSubscriptionType int    `json:"prepaid_subscription_type" validate:"omitempty,prepaid_size"`
}

// UpdateScheduleEntry is a partial edit, nil fields are left as stored.
type UpdateScheduleEntry struct {
	ClientName      *string `json:"client_name"`
	SpecialistID    *string `json:"specialist_id" validate:"omitempty,min=1"`
	SpecialistName  *string `json:"specialist_name"`
	Date            *string `json:"date" validate:"omitempty,date_only"`
	Time            *string `json:"time" validate:"omitempty,clock"`
	ServiceType     *string `json:"service_type" validate:"omitempty,service_type"`
	Status          *string `json:"status" validate:"omitempty,oneof=scheduled completed absent"`
	AbsenceCategory *string `json:"absence_category" validate:"omitempty,oneof=sick family cancelled other"`
	AbsenceReason   *string `json:"absence_reason" validate:"omitempty,max=500"`
	Note            *string `json:"note" validate:"omitempty,max=2000"`

	PaymentTypeDetailed *string `json:"payment_type_detailed" validate:"omitempty,payment_type_detailed"`
	SessionsCompleted   *int    `json:"sessions_completed" validate:"omitempty,gte=0,lte=12"`
	PaymentAmount       *string `json:"payment_amount" validate:"omitempty,decimal"`
	SubscriptionCost    *string `json:"subscription_cost" validate:"omitempty,decimal"`
	PaymentMethod       *string `json:"payment_method" validate:"omitempty,oneof=cash card"`

	IsPaid     *bool   `json:"is_paid"`
	PaidAmount *string `json:"paid_amount" validate:"omitempty,decimal"`
	PaidDate   *string `json:"paid_date" validate:"omitempty,date_only"`

	PaymentDueThisDay *bool   `json:"payment_due_this_day"`
	PaymentDueType    *string `json:"payment_due_type" validate:"omitempty,oneof=single subscription"`
	PaymentDueAmount  *string `json:"payment_due_amount" validate:"omitempty,decimal"`

	PrepaidSubscriptionType *int `json:"prepaid_subscription_type" validate:"omitempty,prepaid_size"`
}

type MarkScheduleEntryPaid struct {
	PaidAmount string `json:"paid_amount" validate:"required,decimal"`
	PaidDate   string `json:"paid_date" validate:"required,date_only"`
}

type ProjectScheduleWeek struct {
	WeekStart string `json:"week_start" validate:"required,date_only"`
}

type FindScheduleWeek struct {
	WeekStart string `validate:"required,date_only"`
}

type FindSubscriptionRun struct {
	ClientID string `validate:"required"`
	Date     string `validate:"required,date_only"`
	Time     string `validate:"required,clock"`
}
