// Package middleware holds the global Echo middleware: request ids,
// request-scoped logging, New Relic tracing, CORS, recovery and the error
// handler that renders every failure as an errs.HTTPError body.
package middleware
