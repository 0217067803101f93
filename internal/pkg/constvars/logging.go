package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingOperationKey  = "operation"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockAttemptKey        = "lock_attempt"

	LoggingEntryIDKey         = "entry_id"
	LoggingClientIDKey        = "client_id"
	LoggingEntryCountKey      = "entry_count"
	LoggingTouchedCountKey    = "touched_count"
	LoggingWeekStartKey       = "week_start"
	LoggingNextWeekStartKey   = "next_week_start"
	LoggingRunStateKey        = "run_state"
	LoggingEventTypeKey       = "event_type"
	LoggingQueueNameKey       = "queue_name"
	LoggingBucketNameKey      = "bucket_name"
	LoggingObjectNameKey      = "object_name"
	LoggingViolationCountKey  = "violation_count"
	LoggingViolationKindKey   = "violation_kind"
	LoggingViolationDetailKey = "violation_detail"
	LoggingCronSpecKey        = "cron_spec"
)
