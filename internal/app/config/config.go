package config

import (
	"fmt"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "schedule_ledger"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Ledger: AppLedger{
			StoreDriver:            utils.GetEnvString("LEDGER_STORE_DRIVER", constvars.StoreDriverMongo),
			WeekStartsOn:           parseWeekday(utils.GetEnvString("LEDGER_WEEK_STARTS_ON", "monday")),
			WriteLockTTL:           utils.GetEnvDuration("LEDGER_WRITE_LOCK_TTL", 15*time.Second),
			WriteLockAttempts:      utils.GetEnvInt("LEDGER_WRITE_LOCK_ATTEMPTS", 20),
			WriteLockRetryInterval: utils.GetEnvDuration("LEDGER_WRITE_LOCK_RETRY_INTERVAL", 100*time.Millisecond),
			AuditCronSpec:          utils.GetEnvString("LEDGER_AUDIT_CRON_SPEC", "@daily"),
			AuditEnabled:           utils.GetEnvBool("LEDGER_AUDIT_ENABLED", true),
			EventsEnabled:          utils.GetEnvBool("LEDGER_EVENTS_ENABLED", true),
			EventsQueueName:        utils.GetEnvString("LEDGER_EVENTS_QUEUE_NAME", "schedule_ledger_events"),
			SnapshotsEnabled:       utils.GetEnvBool("LEDGER_SNAPSHOTS_ENABLED", true),
			SnapshotBucketName:     utils.GetEnvString("LEDGER_SNAPSHOT_BUCKET_NAME", "schedule-ledger-snapshots"),
		},
	}
}

// Validate reports every setting that would make the service misbehave
// instead of failing on the first one.
func (c *InternalConfig) Validate() error {
	var problems []string
	switch c.Ledger.StoreDriver {
	case constvars.StoreDriverMongo, constvars.StoreDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("LEDGER_STORE_DRIVER must be %q or %q", constvars.StoreDriverMongo, constvars.StoreDriverMemory))
	}
	if c.Ledger.WriteLockTTL <= 0 {
		problems = append(problems, "LEDGER_WRITE_LOCK_TTL must be positive")
	} else if c.App.RequestTimeout() >= c.Ledger.WriteLockTTL {
		// the write lock is never refreshed, so a request must not outlive it
		problems = append(problems, fmt.Sprintf("APP_REQUEST_TIMEOUT_IN_SECONDS (%s) must be shorter than LEDGER_WRITE_LOCK_TTL (%s)",
			c.App.RequestTimeout(), c.Ledger.WriteLockTTL))
	}
	if c.Ledger.WriteLockAttempts <= 0 {
		problems = append(problems, "LEDGER_WRITE_LOCK_ATTEMPTS must be positive")
	}
	if c.Ledger.WriteLockRetryInterval <= 0 {
		problems = append(problems, "LEDGER_WRITE_LOCK_RETRY_INTERVAL must be positive")
	}
	if c.Ledger.EventsEnabled && c.Ledger.EventsQueueName == "" {
		problems = append(problems, "LEDGER_EVENTS_QUEUE_NAME is required when events are enabled")
	}
	if c.Ledger.SnapshotsEnabled && c.Ledger.SnapshotBucketName == "" {
		problems = append(problems, "LEDGER_SNAPSHOT_BUCKET_NAME is required when snapshots are enabled")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func parseWeekday(value string) time.Weekday {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), strings.TrimSpace(value)) {
			return day
		}
	}
	return time.Monday
}
