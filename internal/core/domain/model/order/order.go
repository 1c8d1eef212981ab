package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the supply pipeline.
//
// Order follows these invariants:
//   - id, supplierID and itemID are valid UUIDs
//   - quantity is not negative
//   - deliveredAt is set iff deliveryStatus is Delivered or Received
//   - receivedAt is set iff deliveryStatus is Received
//   - version grows by one with every persisted change
type Order struct {
	id         kernel.UUID
	supplierID kernel.UUID
	itemID     kernel.UUID

	// snapshots taken at creation time
	supplierName string
	itemName     string

	quantity int
	amount   *kernel.Money

	status         Status
	financeStatus  FinanceStatus
	deliveryStatus DeliveryStatus

	createdAt   time.Time
	deliveredAt *time.Time
	receivedAt  *time.Time

	version int

	isConstructed bool
}

// NewOrder creates a pending order. amount may be nil; it is normally set by
// the supplier through SubmitSupply.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), supplier.ID(), item.ID(),
//	    supplier.Name(), item.Name(), 10, nil, time.Now())
func NewOrder(
	id, supplierID, itemID kernel.UUID,
	supplierName, itemName string,
	quantity int,
	amount *kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		supplierName:   strings.TrimSpace(supplierName),
		itemName:       strings.TrimSpace(itemName),
		amount:         amount,
		status:         StatusPending,
		financeStatus:  FinancePending,
		deliveryStatus: DeliveryPending,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSupplierID(supplierID),
		o.setItemID(itemID),
		o.setQuantity(quantity),
		o.checkCreatedAt(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat state of an Order used by persistence adapters.
type Snapshot struct {
	ID             kernel.UUID
	SupplierID     kernel.UUID
	ItemID         kernel.UUID
	SupplierName   string
	ItemName       string
	Quantity       int
	Amount         *kernel.Money
	Status         Status
	FinanceStatus  FinanceStatus
	DeliveryStatus DeliveryStatus
	CreatedAt      time.Time
	DeliveredAt    *time.Time
	ReceivedAt     *time.Time
	Version        int
}

// RestoreOrder rebuilds an order from stored state, rejecting rows that break
// the aggregate invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		supplierName:   s.SupplierName,
		itemName:       s.ItemName,
		amount:         s.Amount,
		status:         s.Status,
		financeStatus:  s.FinanceStatus,
		deliveryStatus: s.DeliveryStatus,
		createdAt:      s.CreatedAt,
		deliveredAt:    s.DeliveredAt,
		receivedAt:     s.ReceivedAt,
		version:        s.Version,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSupplierID(s.SupplierID),
		o.setItemID(s.ItemID),
		o.setQuantity(s.Quantity),
		s.Status.Validate(),
		s.FinanceStatus.Validate(),
		s.DeliveryStatus.Validate(),
		o.checkTimestamps(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns a copy of the order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:             o.id,
		SupplierID:     o.supplierID,
		ItemID:         o.itemID,
		SupplierName:   o.supplierName,
		ItemName:       o.itemName,
		Quantity:       o.quantity,
		Amount:         o.amount,
		Status:         o.status,
		FinanceStatus:  o.financeStatus,
		DeliveryStatus: o.deliveryStatus,
		CreatedAt:      o.createdAt,
		DeliveredAt:    o.deliveredAt,
		ReceivedAt:     o.receivedAt,
		Version:        o.version,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) SupplierID() kernel.UUID        { return o.supplierID }
func (o *Order) ItemID() kernel.UUID            { return o.itemID }
func (o *Order) SupplierName() string           { return o.supplierName }
func (o *Order) ItemName() string               { return o.itemName }
func (o *Order) Quantity() int                  { return o.quantity }
func (o *Order) Amount() *kernel.Money          { return o.amount }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) FinanceStatus() FinanceStatus   { return o.financeStatus }
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) DeliveredAt() *time.Time        { return o.deliveredAt }
func (o *Order) ReceivedAt() *time.Time         { return o.receivedAt }

// Version is the optimistic concurrency token of the stored row this order
// was read from.
func (o *Order) Version() int { return o.version }

// BumpVersion is called by the repository after a conditional update matched
// the current version.
func (o *Order) BumpVersion() { o.version++ }

// IsOwnedBy reports whether the given supplier placed this order's supply.
func (o *Order) IsOwnedBy(supplierID kernel.UUID) bool {
	return o.supplierID.IsEqual(supplierID)
}

// Accept records the supplier's acceptance. Only a pending order can be accepted.
func (o *Order) Accept() error {
	next, err := o.status.decide(true)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Reject records the supplier's refusal. Only a pending order can be rejected.
func (o *Order) Reject() error {
	next, err := o.status.decide(false)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// SubmitSupply records the amount the supplier charges for an accepted order
// and reopens finance review, whatever finance decided before.
func (o *Order) SubmitSupply(amount kernel.Money) error {
	if o.status != StatusApproved {
		return errs.NewInvalidStateError("order", "submit supply for", o.status.String())
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	o.amount = &amount
	o.financeStatus = FinancePending
	return nil
}

// ApproveFinance sets finance_status to approved. There is no precondition on
// the other axes.
func (o *Order) ApproveFinance() {
	o.financeStatus = FinanceApproved
}

// RejectFinance sets finance_status to rejected. There is no precondition on
// the other axes.
func (o *Order) RejectFinance() {
	o.financeStatus = FinanceRejected
}

// MarkDelivered records physical dispatch by the supplier.
func (o *Order) MarkDelivered(at time.Time) error {
	next, err := o.deliveryStatus.MarkDelivered()
	if err != nil {
		return err
	}
	at = at.UTC()
	o.deliveryStatus = next
	o.deliveredAt = &at
	return nil
}

// ConfirmReceived records that inventory physically received the goods.
//
// Returns:
//   - (true, nil) when the order moved from delivered to received
//   - (false, nil) when it was already received; nothing changes
//   - (false, error) when the goods were never delivered
func (o *Order) ConfirmReceived(at time.Time) (bool, error) {
	if o.deliveryStatus == DeliveryReceived {
		return false, nil
	}

	next, err := o.deliveryStatus.ConfirmReceived()
	if err != nil {
		return false, err
	}
	at = at.UTC()
	o.deliveryStatus = next
	o.receivedAt = &at
	return true, nil
}

// StockIncrement is the number of units a confirmed receipt adds to the item.
func (o *Order) StockIncrement() int {
	return max(o.quantity, 0)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSupplierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplier_id", err)
	}
	o.supplierID = id
	return nil
}

func (o *Order) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	o.itemID = id
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is less than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) checkCreatedAt() error {
	if o.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	return nil
}

func (o *Order) checkTimestamps() error {
	if err := o.checkCreatedAt(); err != nil {
		return err
	}
	if o.deliveryStatus.IsDispatched() != (o.deliveredAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivered_at is invalid",
			fmt.Errorf("delivered_at presence does not match %s delivery status", o.deliveryStatus),
		)
	}
	if (o.deliveryStatus == DeliveryReceived) != (o.receivedAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"received_at is invalid",
			fmt.Errorf("received_at presence does not match %s delivery status", o.deliveryStatus),
		)
	}
	return nil
}
