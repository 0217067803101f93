package constvars

const (
	MongoCollectionScheduleEntries = "schedule_entries"
)

const (
	RedisKeyLedgerWriteLock   = "schedule_ledger:write_lock"
	RedisKeyLedgerAuditLeader = "schedule_ledger:audit_leader"
)

const (
	EventScheduleEntryCreated   = "schedule_entry.created"
	EventScheduleEntryUpdated   = "schedule_entry.updated"
	EventScheduleEntryActivated = "schedule_entry.activated"
	EventScheduleEntryDeleted   = "schedule_entry.deleted"
	EventScheduleWeekProjected  = "schedule_week.projected"
)

const (
	SnapshotObjectPrefix     = "ledger-snapshots"
	SnapshotReasonProjection = "projection"
	SnapshotReasonActivation = "activation"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
