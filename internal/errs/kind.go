package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies why a repository operation did not succeed.
type Kind uint8

const (
	// Unknown is the zero Kind. It is never produced by the constructors below.
	Unknown Kind = iota

	// NotFound means the requested entity or aggregate is absent.
	NotFound

	// Duplicate means an entity with the same business key already exists.
	// The Error carries the id of the existing row when it is known.
	Duplicate

	// NoChange means an update was requested but the stored state already
	// equals the requested state. No write was performed.
	NoChange

	// OperationFailed means a write affected an unexpected number of rows,
	// a generated key was missing, or the store rejected the statement.
	OperationFailed

	// StoreUnavailable means the store could not be reached.
	StoreUnavailable

	// Invalid means the input was rejected before touching the store.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Duplicate:
		return "duplicate"
	case NoChange:
		return "no_change"
	case OperationFailed:
		return "operation_failed"
	case StoreUnavailable:
		return "store_unavailable"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrNotFound         = &Error{Kind: NotFound}
	ErrDuplicate        = &Error{Kind: Duplicate}
	ErrNoChange         = &Error{Kind: NoChange}
	ErrOperationFailed  = &Error{Kind: OperationFailed}
	ErrStoreUnavailable = &Error{Kind: StoreUnavailable}
	ErrInvalid          = &Error{Kind: Invalid}
)

// Error is the single error type returned by the repository layer.
//
//   - Kind: what went wrong
//   - Entity: which entity the operation was about ("movie", "actor", ...)
//   - ID: the id involved; for Duplicate this is the id of the existing row
//   - Message: human readable detail
//   - Err: underlying cause, kept for logs and errors.As
type Error struct {
	Kind    Kind
	Entity  string
	ID      int64
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Entity != "" {
		msg = e.Entity + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so errors.Is(err, ErrNotFound)
// works no matter which entity or id the error describes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// DuplicateID returns the id of the already existing row carried by a
// Duplicate error. ok is false when err is not a Duplicate or carries no id.
func DuplicateID(err error) (id int64, ok bool) {
	var e *Error
	if !errors.As(err, &e) || e.Kind != Duplicate || e.ID == 0 {
		return 0, false
	}
	return e.ID, true
}

func NotFoundError(entity string, id int64) *Error {
	return &Error{
		Kind:    NotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("no %s with id %d", entity, id),
	}
}

// DuplicateError reports that entity already exists as row existingID.
func DuplicateError(entity string, existingID int64) *Error {
	return &Error{
		Kind:    Duplicate,
		Entity:  entity,
		ID:      existingID,
		Message: fmt.Sprintf("%s already exists with id %d", entity, existingID),
	}
}

func NoChangeError(entity string, id int64) *Error {
	return &Error{
		Kind:    NoChange,
		Entity:  entity,
		ID:      id,
		Message: "stored state is identical, nothing to update",
	}
}

// OperationFailedError records a stack on cause for the error logs.
func OperationFailedError(entity, message string, cause error) *Error {
	return &Error{
		Kind:    OperationFailed,
		Entity:  entity,
		Message: message,
		Err:     pkgerrors.WithStack(cause),
	}
}

func StoreUnavailableError(cause error) *Error {
	return &Error{
		Kind:    StoreUnavailable,
		Message: "store unavailable",
		Err:     cause,
	}
}

func InvalidError(entity, message string) *Error {
	return &Error{
		Kind:    Invalid,
		Entity:  entity,
		Message: message,
	}
}

// WithEntity fills in the entity on a classified error that does not have
// one yet (sqlerr cannot know which repository called it).
func WithEntity(err error, entity string) error {
	var e *Error
	if errors.As(err, &e) && e.Entity == "" {
		cp := *e
		cp.Entity = entity
		return &cp
	}
	return err
}
