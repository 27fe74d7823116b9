// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from the service layer. List queries
// share a common predicate builder and pagination window, and issue
// their count and fetch concurrently.
package repository
