package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":              "is required",
	"required_if":           "is required when %s is %s",
	"min":                   "must be at least %s",
	"max":                   "must be at most %s",
	"oneof":                 "must be one of [%s]",
	"gt":                    "must be greater than %s",
	"gte":                   "must be greater than or equal to %s",
	"lte":                   "must be less than or equal to %s",
	"date_only":             "must be a date formatted as YYYY-MM-DD",
	"clock":                 "must be a time formatted as HH:mm",
	"decimal":               "must be a non-negative decimal amount",
	"service_type":          "must be one of [diagnostics, consultation, session, group_session, repeat_diagnostics]",
	"payment_type_detailed": "must be one of [single, subscription4, subscription8, subscription12]",
	"prepaid_size":          "must be one of [0, 4, 8, 12]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"required_if": true,
	"min":         true,
	"max":         true,
	"oneof":       true,
	"gt":          true,
	"gte":         true,
	"lte":         true,
}

