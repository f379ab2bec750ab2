// Package errs defines the error taxonomy of the catalog.
//
// Repositories report every failure as an *Error carrying a Kind
// (not found, duplicate, no change, operation failed, store unavailable,
// invalid input). Callers branch with errors.Is against the sentinels
// or with KindOf, and never see raw driver errors.
//
// The HTTP shapes (HTTPError, FieldError) live here too so the transport
// layer can translate a Kind into a consistent JSON response.
package errs
