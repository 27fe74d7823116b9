// Package validation binds and validates request payloads.
//
// Request structs carry `validate` tags (required fields, enum choices,
// numeric ranges) and implement Validatable; failures are converted into
// field-level 400 errors the client can render next to inputs.
package validation
