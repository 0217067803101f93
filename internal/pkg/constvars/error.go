package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientScheduleEntryNotFound         = "schedule entry not found"
	ErrClientMissingServiceType            = "service type is required"
	ErrClientEmptyWeek                     = "there are no sessions in the selected week to copy"
	ErrClientLedgerBusy                    = "the schedule is being updated by someone else, please try again"
	ErrClientTooManyRequests               = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevValidationFailed           = "validation failed"
	ErrDevInvalidFormat              = "invalid format of %s"
	ErrDevURLParamIDValidationFailed = "url param %s validation failed"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevTooManyRequests            = "rate limit exceeded"

	// Ledger messages
	ErrDevScheduleEntryNotFound = "schedule entry %s not found"
	ErrDevLedgerRuleViolated    = "ledger rule violated"

	// Mongo DB messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToReplaceDocuments = "failed to replace documents"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToCreateIndex      = "failed to create index on %s"
	ErrDevDBFailedToStartSession     = "failed to start mongo session"
	ErrDevDBDocumentConversion       = "failed to convert stored document into schedule entry"

	// Redis messages
	ErrDevRedisGetNoData   = "failed to get data from redis with key: %s"
	ErrDevRedisSetData     = "failed to set data into redis"
	ErrDevRedisDeleteData  = "failed to delete data from redis"
	ErrDevRedisExpireData  = "failed to extend expiration of redis key"
	ErrDevRedisLockNotHeld = "lock %s is not held by this owner"
	ErrDevLockNotAcquired  = "lock %s not acquired after %d attempts"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"
)
