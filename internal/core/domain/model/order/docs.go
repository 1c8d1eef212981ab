// Package order provides the Order aggregate: a supply request raised by
// inventory staff and fulfilled by a supplier, tracked on three independent
// status axes.
//
// The package includes:
//   - Order: aggregate root holding identity, name snapshots, quantity, amount and timestamps
//   - Status, FinanceStatus, DeliveryStatus: small enumerations with their transitions
//
// Axes and transitions:
//
//	status:          pending --accept--> approved | pending --reject--> rejected
//	finance_status:  any --approve--> approved | any --reject--> rejected | any --supply--> pending
//	delivery_status: pending --mark delivered--> delivered --confirm--> received
//
// Finance decisions carry no precondition on the other axes, and marking
// delivery does not wait for finance approval. Both are observable behavior of
// the running system and are kept as is.
//
// Reachable (status, finance_status, delivery_status) triples:
//
//	status    finance   delivery                        reachable via
//	pending   pending   pending                         create
//	pending   approved  pending                         finance decides before acceptance
//	pending   rejected  pending                         finance decides before acceptance
//	pending   *         delivered, received             mark delivered before acceptance
//	approved  *         pending, delivered, received    accept, supply, finance, delivery
//	rejected  *         pending, delivered, received    reject (delivery axis stays open)
//
// Every combination of the three axes is therefore reachable; the only
// ordered constraints are within an axis plus the supply step requiring
// status = approved. Timestamps follow delivery_status: delivered_at is set
// iff delivery_status is delivered or received, and received_at is set iff it
// is received.
//
// supplier_name and item_name are snapshots captured at creation; renaming a
// supplier or item later does not change existing orders.
package order
