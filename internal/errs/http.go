package errs

import (
	"errors"
	"net/http"
)

func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}
	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewBadRequestError creates a 400. code overrides the default "BAD_REQUEST"
// and errors carries field-level validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, override, code)
	e.Errors = errors
	return e
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

func NewConflictError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, override, code)
}

// NewInternalServerError creates a 500 with the generic status text, so
// no internal detail reaches the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

func NewServiceUnavailableError() *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable), false, nil)
}

// ValidationError converts a validator error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}

// ToHTTP maps a repository error onto its HTTP response shape.
//
//	NotFound         -> 404 <ENTITY>_NOT_FOUND
//	Duplicate        -> 409 <ENTITY>_ALREADY_EXISTS
//	NoChange         -> 409 <ENTITY>_UNCHANGED
//	Invalid          -> 400 <ENTITY>_INVALID
//	StoreUnavailable -> 503
//	anything else    -> 500
//
// An *HTTPError is returned unchanged.
func ToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var e *Error
	if !errors.As(err, &e) {
		return NewInternalServerError()
	}

	entity := e.Entity
	if entity == "" {
		entity = "record"
	}
	code := func(suffix string) *string {
		c := MakeUpperCaseWithUnderscores(entity) + "_" + suffix
		return &c
	}

	switch e.Kind {
	case NotFound:
		return NewNotFoundError(e.Message, true, code("NOT_FOUND"))
	case Duplicate:
		return NewConflictError(e.Message, true, code("ALREADY_EXISTS"))
	case NoChange:
		return NewConflictError(e.Message, true, code("UNCHANGED"))
	case Invalid:
		return NewBadRequestError(e.Message, true, code("INVALID"), nil)
	case StoreUnavailable:
		return NewServiceUnavailableError()
	default:
		return NewInternalServerError()
	}
}
