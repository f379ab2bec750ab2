package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError converts a raw *pgconn.PgError into an *Error.
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

// entityFromTable singularizes a table name: "movies" -> "movie",
// "movies_actors" -> "movie actor".
func entityFromTable(tableName string) string {
	if tableName == "" {
		return "record"
	}
	parts := strings.Split(tableName, "_")
	for i, p := range parts {
		if strings.HasSuffix(p, "s") && len(p) > 1 {
			parts[i] = p[:len(p)-1]
		}
	}
	return strings.Join(parts, " ")
}

// formatUserFriendlyMessage phrases a driver error for end users, using
// table and column names when the server reported them.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := humanizeText(entityFromTable(sqlErr.TableName))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The %s is still referenced by another record", entityName)
	case UniqueViolation:
		msg := fmt.Sprintf("A %s with this identifier already exists", entityName)
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			msg = strings.ReplaceAll(msg, "identifier", humanizeText(column))
		}
		return msg
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// humanizeText turns "media_type" into "Media Type".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a constraint name
// following either "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}
	if matches := uniqueKeyRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// isUnavailable reports transport level failures: the server could not be
// reached or the call timed out.
func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// HandleError converts a driver error into an *errs.Error.
//
//   - *errs.Error: returned unchanged
//   - pgx.ErrNoRows: NotFound
//   - *pgconn.PgError: Duplicate for unique violations, StoreUnavailable for
//     connection, resource and operator classes, OperationFailed otherwise
//   - connect errors, timeouts, net errors: StoreUnavailable
//   - anything else: OperationFailed
//
// nil stays nil.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &errs.Error{Kind: errs.NotFound, Message: "record not found", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)
		message := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case UniqueViolation:
			return &errs.Error{Kind: errs.Duplicate, Message: message, Err: sqlErr}
		case ConnectionException, InsufficientResources, OperatorIntervention:
			return errs.StoreUnavailableError(sqlErr)
		default:
			return errs.OperationFailedError("", message, sqlErr)
		}
	}

	if isUnavailable(err) {
		return errs.StoreUnavailableError(err)
	}

	return errs.OperationFailedError("", "store operation failed", err)
}
