package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23505": UniqueViolation,
		"23503": ForeignKeyViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"08006": ConnectionException,
		"53300": InsufficientResources,
		"57P01": OperatorIntervention,
		"42P01": Other,
		"":      Other,
	}
	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestHandleErrorPassesThroughClassifiedErrors(t *testing.T) {
	in := errs.NotFoundError("movie", 3)
	assert.Same(t, in, HandleError(in))
	assert.NoError(t, HandleError(nil))
}

func TestHandleErrorNoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("scan: %w", pgx.ErrNoRows))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "actors",
		ConstraintName: "actors_name_key",
		Message:        "duplicate key value violates unique constraint",
	})

	require.ErrorIs(t, err, errs.ErrDuplicate)
	assert.Contains(t, err.Error(), "A Actor with this Name already exists")
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestHandleErrorForeignKeyIsOperationFailed(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23503", TableName: "movies_actors"})

	require.ErrorIs(t, err, errs.ErrOperationFailed)
	assert.Contains(t, err.Error(), "Movie Actor")
}

func TestHandleErrorUnavailable(t *testing.T) {
	tests := []error{
		&pgconn.PgError{Code: "08006"},
		&pgconn.PgError{Code: "57P01"},
		context.DeadlineExceeded,
	}
	for _, in := range tests {
		assert.ErrorIs(t, HandleError(in), errs.ErrStoreUnavailable, in.Error())
	}
}

func TestHandleErrorFallback(t *testing.T) {
	err := HandleError(errors.New("something odd"))
	assert.ErrorIs(t, err, errs.ErrOperationFailed)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "title", extractColumnForUniqueViolation("unique_movies_title"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("directors_name_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("movies_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
