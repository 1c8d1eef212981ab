package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
)

// DeliverySource is one order row as read for projection. The *RecordName
// fields come from the referenced supplier and item and may be empty when the
// record is gone.
type DeliverySource struct {
	OrderID            kernel.UUID
	ItemName           string
	SupplierName       string
	ItemRecordName     string
	SupplierRecordName string
	Quantity           int
	Amount             *kernel.Money
	DeliveredAt        *time.Time
	DeliveryStatus     order.DeliveryStatus
	CreatedAt          time.Time
}

// Delivery is the flat view of an order shown on delivery screens and exports.
type Delivery struct {
	OrderID        kernel.UUID
	ItemName       string
	SupplierName   string
	Quantity       int
	Amount         *kernel.Money
	DeliveredAt    *time.Time
	DeliveryStatus order.DeliveryStatus
	CreatedAt      time.Time
}

// ItemTotal is the delivered quantity of one item across deliveries.
type ItemTotal struct {
	ItemName      string
	TotalQuantity int
	Deliveries    int
}

// DeliveryProjector turns order rows into deliveries.
type DeliveryProjector struct{}

func NewDeliveryProjector() DeliveryProjector {
	return DeliveryProjector{}
}

// Project resolves names, preferring the snapshot on the order and falling
// back to the referenced record, and orders the result newest first with ties
// broken by order id. The input is not modified.
func (DeliveryProjector) Project(rows []DeliverySource) []Delivery {
	out := make([]Delivery, 0, len(rows))
	for _, r := range rows {
		out = append(out, Delivery{
			OrderID:        r.OrderID,
			ItemName:       cmp.Or(strings.TrimSpace(r.ItemName), r.ItemRecordName),
			SupplierName:   cmp.Or(strings.TrimSpace(r.SupplierName), r.SupplierRecordName),
			Quantity:       r.Quantity,
			Amount:         r.Amount,
			DeliveredAt:    r.DeliveredAt,
			DeliveryStatus: r.DeliveryStatus,
			CreatedAt:      r.CreatedAt,
		})
	}

	slices.SortFunc(out, func(a, b Delivery) int {
		return cmp.Or(
			b.CreatedAt.Compare(a.CreatedAt),
			strings.Compare(a.OrderID.String(), b.OrderID.String()),
		)
	})
	return out
}

// FilterDeliveries keeps deliveries whose item or supplier name contains q,
// ignoring case. Order is preserved and an empty q keeps everything.
func (DeliveryProjector) FilterDeliveries(ds []Delivery, q string) []Delivery {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return ds
	}

	out := make([]Delivery, 0, len(ds))
	for _, d := range ds {
		if strings.Contains(strings.ToLower(d.ItemName), q) ||
			strings.Contains(strings.ToLower(d.SupplierName), q) {
			out = append(out, d)
		}
	}
	return out
}

// GroupByItem sums quantities per item name over deliveries that have left
// the supplier. Groups appear in the order their first delivery does.
func (DeliveryProjector) GroupByItem(ds []Delivery) []ItemTotal {
	index := make(map[string]int)
	var out []ItemTotal
	for _, d := range ds {
		if !d.DeliveryStatus.IsDispatched() {
			continue
		}
		i, ok := index[d.ItemName]
		if !ok {
			i = len(out)
			index[d.ItemName] = i
			out = append(out, ItemTotal{ItemName: d.ItemName})
		}
		out[i].TotalQuantity += d.Quantity
		out[i].Deliveries++
	}
	return out
}
