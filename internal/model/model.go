// Package model defines the domain entities stored in Postgres and the
// shapes serialized to API clients.
package model
