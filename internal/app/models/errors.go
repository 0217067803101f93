package models

import "errors"

var (
	ErrMissingServiceType       = errors.New("service type is required")
	ErrUnknownServiceType       = errors.New("service type is not recognised")
	ErrNonPositiveTotalSessions = errors.New("total sessions must be positive")
	ErrSessionsExceedTotal      = errors.New("sessions completed cannot exceed total sessions")
	ErrNegativeSessions         = errors.New("sessions completed cannot be negative")
	ErrSingleRunSize            = errors.New("a single payment covers exactly one session")
	ErrMissingAbsenceCategory   = errors.New("an absent entry needs an absence category")
	ErrUnexpectedAbsence        = errors.New("only absent entries carry an absence category")
	ErrMissingClient            = errors.New("client is required")
	ErrMissingDate              = errors.New("date is required")
	ErrEmptyWeek                = errors.New("the selected week has no entries to copy")
	ErrEntryNotFound            = errors.New("schedule entry not found")
)
