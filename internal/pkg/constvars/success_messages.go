package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	CreateScheduleEntrySuccessMessage = "schedule entry created successfully"
	UpdateScheduleEntrySuccessMessage = "schedule entry updated successfully"
	PayScheduleEntrySuccessMessage    = "schedule entry payment recorded successfully"
	DeleteScheduleEntrySuccessMessage = "schedule entry deleted successfully"
	GetScheduleEntrySuccessMessage    = "get schedule entry successfully"
	GetScheduleWeekSuccessMessage     = "get schedule week successfully"
	GetClientScheduleSuccessMessage   = "get client schedule successfully"
	GetSubscriptionRunSuccessMessage  = "get subscription run successfully"
	ProjectScheduleWeekSuccessMessage = "schedule week copied to the next week successfully"
)

