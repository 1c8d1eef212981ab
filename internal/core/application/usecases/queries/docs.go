// Package queries holds the read side of the service. Query handlers read
// straight from PostgreSQL through sqlx and return flat views; they never load
// aggregates or go through a unit of work.
//
// Scoping follows the callers: a non-nil owner (supplier or passenger id) on a
// query narrows the result to that owner's rows, and a nil owner is the staff
// view.
package queries
