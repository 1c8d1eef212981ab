// Package kernel provides the shared value objects of the ferryops domain model.
//
// The package includes:
//   - UUID: identifier for orders, items, suppliers, bookings and chat messages
//   - Money: non-negative monetary amount backed by an arbitrary-precision decimal
//
// Both types are immutable and have an invalid zero value, so a field that was
// never assigned is caught by Validate rather than silently persisted.
package kernel
