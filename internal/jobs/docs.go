// Package jobs provides scheduled background tasks for ferryops.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take six fields, the first being seconds.
//
// # Available Jobs
//
// 1. LowStockJob - lists items at or below their reorder level, sets the
// low stock gauge and logs each item
// 2. BookingCompletionJob - moves assigned bookings whose travel date is before
// today to completed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(getItemsHandler, completeBookingsHandler, jobs.Schedules{
//		LowStock:          "0 */15 * * * *",
//		BookingCompletion: "0 5 0 * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and the next tick tries again. A failed scan leaves the
// gauge at its previous value.
package jobs
