// Package sqlerr translates database driver errors into client-facing
// errors.
//
// It parses SQLSTATE codes from pgx/pgconn and converts constraint
// violations into friendly 400s (e.g. a unique violation on users.email
// becomes "A User with this Email already exists") while everything
// unexpected collapses to a generic 500.
package sqlerr

import (
	"github.com/jackc/pgx/v5/pgconn"
)

// Code classifies database errors into the categories the API cares about.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	ConnectionFailure
	InvalidTextRepresentation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is the normalized database error carrying the metadata needed to
// build user-facing messages and machine codes.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As/Is chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE string to a Code.
//
// SQLSTATE reference: class 23 is integrity constraint violation, class 08
// is connection exception, 22P02 is invalid text representation (e.g. a
// malformed uuid literal).
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
	case "22P02":
		return InvalidTextRepresentation
	default:
		if len(sqlState) >= 2 && sqlState[:2] == "08" {
			return ConnectionFailure
		}
		return Other
	}
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// ConvertPgError converts a raw pgconn.PgError into a normalized *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
