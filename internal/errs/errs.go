// Package errs defines the error types returned to API clients.
//
// Every handler error eventually becomes an HTTPError so clients
// receive a consistent JSON shape with a machine-readable code,
// an HTTP status, and optional field-level validation errors.
package errs
