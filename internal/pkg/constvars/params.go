package constvars

const (
	URLParamEntryID  = "entryID"
	URLParamClientID = "clientID"
)

const (
	URLQueryParamWeekStart = "week_start"
	URLQueryParamDate      = "date"
	URLQueryParamTime      = "time"
)
