// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - DeliveryProjector: builds the flat delivery view of orders joined with
//     their supplier and item records
//
// Projections are computed on every read and are never stored.
package services
