package config

import "time"

type InternalConfig struct {
	App    App
	Ledger AppLedger
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
}

// defaultRequestTimeout applies when APP_REQUEST_TIMEOUT_IN_SECONDS is unset or not positive.
const defaultRequestTimeout = 10 * time.Second

// RequestTimeout is the deadline given to one handled request.
func (a App) RequestTimeout() time.Duration {
	if a.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(a.RequestTimeoutInSeconds) * time.Second
}

// AppLedger configures the schedule ledger and its collaborators.
type AppLedger struct {
	// StoreDriver selects the entry store: "mongo" or "memory".
	StoreDriver string
	// WeekStartsOn is the first weekday of a displayed week.
	WeekStartsOn time.Weekday
	// WriteLockTTL bounds how long one read-compute-replace cycle may hold the ledger.
	WriteLockTTL time.Duration
	// WriteLockAttempts is the number of acquisition attempts before giving up.
	WriteLockAttempts int
	// WriteLockRetryInterval paces acquisition attempts.
	WriteLockRetryInterval time.Duration
	// AuditCronSpec schedules the read-only invariant audit (e.g. "@daily").
	AuditCronSpec string
	AuditEnabled  bool
	// EventsEnabled publishes committed changes to EventsQueueName.
	EventsEnabled   bool
	EventsQueueName string
	// SnapshotsEnabled archives the ledger to SnapshotBucketName before bulk writes.
	SnapshotsEnabled   bool
	SnapshotBucketName string
}
