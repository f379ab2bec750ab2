// Package sqlerr classifies database driver errors.
//
// It reads SQLSTATE codes and connection failures from pgx and turns
// them into errs kinds (a unique violation becomes a Duplicate, a
// refused connection becomes StoreUnavailable, and so on), so the
// repository layer never hands raw driver errors to its callers.
package sqlerr

import "strings"

// Code is the classified category of a database error.
type Code string

const (
	Other                 Code = "other"
	UniqueViolation       Code = "unique_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	NotNullViolation      Code = "not_null_violation"
	CheckViolation        Code = "check_violation"
	ConnectionException   Code = "connection_exception"
	InsufficientResources Code = "insufficient_resources"
	OperatorIntervention  Code = "operator_intervention"
)

// MapCode maps a Postgres SQLSTATE onto a Code. Exact codes are checked
// first, then the two-character class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}

	if len(sqlState) < 2 {
		return Other
	}
	switch sqlState[:2] {
	case "08":
		return ConnectionException
	case "53":
		return InsufficientResources
	case "57":
		return OperatorIntervention
	}
	return Other
}

// Severity is the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a structured view of a Postgres error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return e.Severity.String() + ": " + e.Message + " (SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

func (s Severity) String() string {
	return string(s)
}
