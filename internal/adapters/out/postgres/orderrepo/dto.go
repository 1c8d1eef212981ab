// Package orderrepo persists order aggregates. Statuses are stored by name so
// the read side can filter on them without knowing the enum encoding.
package orderrepo

import (
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	SupplierID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	ItemID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	SupplierName   string           `gorm:"not null;default:''"`
	ItemName       string           `gorm:"not null;default:''"`
	Quantity       int              `gorm:"not null"`
	Amount         *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status         string           `gorm:"type:varchar(16);not null;index"`
	FinanceStatus  string           `gorm:"type:varchar(16);not null"`
	DeliveryStatus string           `gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time        `gorm:"not null;index"`
	DeliveredAt    *time.Time
	ReceivedAt     *time.Time
	Version        int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var amount *decimal.Decimal
	if m := o.Amount(); m != nil {
		d := m.Decimal()
		amount = &d
	}

	return OrderDTO{
		ID:             o.ID().Bytes(),
		SupplierID:     o.SupplierID().Bytes(),
		ItemID:         o.ItemID().Bytes(),
		SupplierName:   o.SupplierName(),
		ItemName:       o.ItemName(),
		Quantity:       o.Quantity(),
		Amount:         amount,
		Status:         o.Status().String(),
		FinanceStatus:  o.FinanceStatus().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		CreatedAt:      o.CreatedAt(),
		DeliveredAt:    o.DeliveredAt(),
		ReceivedAt:     o.ReceivedAt(),
		Version:        o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	var amount *kernel.Money
	if dto.Amount != nil {
		m, moneyErr := kernel.NewMoney(*dto.Amount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amount = &m
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	finance, err := order.ParseFinanceStatus(dto.FinanceStatus)
	if err != nil {
		return nil, err
	}
	delivery, err := order.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		SupplierID:     supplierID,
		ItemID:         itemID,
		SupplierName:   dto.SupplierName,
		ItemName:       dto.ItemName,
		Quantity:       dto.Quantity,
		Amount:         amount,
		Status:         status,
		FinanceStatus:  finance,
		DeliveryStatus: delivery,
		CreatedAt:      dto.CreatedAt.UTC(),
		DeliveredAt:    utc(dto.DeliveredAt),
		ReceivedAt:     utc(dto.ReceivedAt),
		Version:        dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
