package http

import (
	"time"

	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/core/domain/services"
)

type createOrderRequest struct {
	SupplierID string  `json:"supplier_id" validate:"required,uuid"`
	ItemID     string  `json:"item_id" validate:"required,uuid"`
	Quantity   int     `json:"quantity" validate:"min=0"`
	Amount     *string `json:"amount,omitempty" validate:"omitempty,numeric"`
}

type supplyRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required"`
}

type itemRequest struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Unit         string `json:"unit" validate:"required"`
	ReorderLevel int    `json:"reorder_level" validate:"min=0"`
	CurrentStock int    `json:"current_stock" validate:"min=0"`
}

type supplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type bookingRequest struct {
	BookingType      string   `json:"booking_type" validate:"required,oneof=passenger vehicle cargo"`
	TravelDate       string   `json:"travel_date" validate:"required,datetime=2006-01-02"`
	TravelTime       string   `json:"travel_time" validate:"required"`
	Route            string   `json:"route" validate:"required"`
	NumPassengers    *int     `json:"num_passengers,omitempty" validate:"omitempty,min=1"`
	VehicleType      string   `json:"vehicle_type"`
	VehiclePlate     string   `json:"vehicle_plate"`
	CargoDescription string   `json:"cargo_description"`
	CargoWeightKg    *float64 `json:"cargo_weight_kg,omitempty" validate:"omitempty,min=0"`
	AmountPaid       *string  `json:"amount_paid,omitempty" validate:"omitempty,numeric"`
	PaymentMethod    string   `json:"payment_method" validate:"omitempty,oneof=mpesa card cash bank"`
	TransactionID    string   `json:"transaction_id"`
}

type ferryRequest struct {
	FerryName string `json:"ferry_name" validate:"required"`
}

type chatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type orderResponse struct {
	ID             string     `json:"id"`
	SupplierID     string     `json:"supplier_id"`
	ItemID         string     `json:"item_id"`
	SupplierName   string     `json:"supplier_name"`
	ItemName       string     `json:"item_name"`
	Quantity       int        `json:"quantity"`
	Amount         *string    `json:"amount"`
	Status         string     `json:"status"`
	FinanceStatus  string     `json:"finance_status"`
	DeliveryStatus string     `json:"delivery_status"`
	CreatedAt      time.Time  `json:"created_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	ReceivedAt     *time.Time `json:"received_at"`
}

type confirmReceivedResponse struct {
	Order           orderResponse `json:"order"`
	AlreadyReceived bool          `json:"already_received"`
}

type deliveryResponse struct {
	OrderID        string     `json:"order_id"`
	ItemName       string     `json:"item_name"`
	SupplierName   string     `json:"supplier_name"`
	Quantity       int        `json:"quantity"`
	Amount         *string    `json:"amount"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	DeliveryStatus string     `json:"delivery_status"`
}

type itemTotalResponse struct {
	ItemName      string `json:"item_name"`
	TotalQuantity int    `json:"total_quantity"`
	Deliveries    int    `json:"deliveries"`
}

type deliveriesResponse struct {
	Deliveries []deliveryResponse  `json:"deliveries"`
	Totals     []itemTotalResponse `json:"totals,omitempty"`
}

type itemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	CurrentStock int       `json:"current_stock"`
	ReorderLevel int       `json:"reorder_level"`
	LowStock     bool      `json:"low_stock"`
	CreatedAt    time.Time `json:"created_at"`
}

type supplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type bookingResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	BookingType      string    `json:"booking_type"`
	TravelDate       string    `json:"travel_date"`
	TravelTime       string    `json:"travel_time"`
	Route            string    `json:"route"`
	NumPassengers    *int      `json:"num_passengers"`
	VehicleType      string    `json:"vehicle_type,omitempty"`
	VehiclePlate     string    `json:"vehicle_plate,omitempty"`
	CargoDescription string    `json:"cargo_description,omitempty"`
	CargoWeightKg    *float64  `json:"cargo_weight_kg"`
	AmountPaid       string    `json:"amount_paid"`
	PaymentMethod    string    `json:"payment_method"`
	TransactionID    string    `json:"transaction_id,omitempty"`
	PaymentStatus    string    `json:"payment_status"`
	BookingStatus    string    `json:"booking_status"`
	FerryName        *string   `json:"ferry_name"`
	CreatedAt        time.Time `json:"created_at"`
}

type bookingPageResponse struct {
	Bookings   []bookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

type financeSummaryResponse struct {
	TotalBookings  int    `json:"total_bookings"`
	TotalRevenue   string `json:"total_revenue"`
	PendingAmount  string `json:"pending_amount"`
	RejectedAmount string `json:"rejected_amount"`
}

type chatMessageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

const dateLayout = "2006-01-02"

func moneyPtr(m *kernel.Money) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:             o.ID().String(),
		SupplierID:     o.SupplierID().String(),
		ItemID:         o.ItemID().String(),
		SupplierName:   o.SupplierName(),
		ItemName:       o.ItemName(),
		Quantity:       o.Quantity(),
		Amount:         moneyPtr(o.Amount()),
		Status:         o.Status().String(),
		FinanceStatus:  o.FinanceStatus().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		CreatedAt:      o.CreatedAt(),
		DeliveredAt:    o.DeliveredAt(),
		ReceivedAt:     o.ReceivedAt(),
	}
}

func fromOrderView(v queries.OrderView) orderResponse {
	return orderResponse{
		ID:             v.ID.String(),
		SupplierID:     v.SupplierID.String(),
		ItemID:         v.ItemID.String(),
		SupplierName:   v.SupplierName,
		ItemName:       v.ItemName,
		Quantity:       v.Quantity,
		Amount:         moneyPtr(v.Amount),
		Status:         v.Status.String(),
		FinanceStatus:  v.FinanceStatus.String(),
		DeliveryStatus: v.DeliveryStatus.String(),
		CreatedAt:      v.CreatedAt,
		DeliveredAt:    v.DeliveredAt,
		ReceivedAt:     v.ReceivedAt,
	}
}

func fromDeliveries(r queries.GetDeliveriesQueryResponse) deliveriesResponse {
	resp := deliveriesResponse{Deliveries: make([]deliveryResponse, len(r.Deliveries))}
	for i, d := range r.Deliveries {
		resp.Deliveries[i] = fromDelivery(d)
	}
	if r.Totals != nil {
		resp.Totals = make([]itemTotalResponse, len(r.Totals))
		for i, t := range r.Totals {
			resp.Totals[i] = itemTotalResponse{ItemName: t.ItemName, TotalQuantity: t.TotalQuantity, Deliveries: t.Deliveries}
		}
	}
	return resp
}

func fromDelivery(d services.Delivery) deliveryResponse {
	return deliveryResponse{
		OrderID:        d.OrderID.String(),
		ItemName:       d.ItemName,
		SupplierName:   d.SupplierName,
		Quantity:       d.Quantity,
		Amount:         moneyPtr(d.Amount),
		DeliveredAt:    d.DeliveredAt,
		DeliveryStatus: d.DeliveryStatus.String(),
	}
}

func toItemResponse(i *inventory.Item) itemResponse {
	return itemResponse{
		ID:           i.ID().String(),
		Name:         i.Name(),
		Category:     i.Category(),
		Unit:         i.Unit(),
		CurrentStock: i.CurrentStock(),
		ReorderLevel: i.ReorderLevel(),
		LowStock:     i.IsBelowReorderLevel(),
		CreatedAt:    i.CreatedAt(),
	}
}

func fromItemView(v queries.ItemView) itemResponse {
	return itemResponse{
		ID:           v.ID.String(),
		Name:         v.Name,
		Category:     v.Category,
		Unit:         v.Unit,
		CurrentStock: v.CurrentStock,
		ReorderLevel: v.ReorderLevel,
		LowStock:     v.LowStock,
		CreatedAt:    v.CreatedAt,
	}
}

func toSupplierResponse(s *supplier.Supplier) supplierResponse {
	return supplierResponse{
		ID:        s.ID().String(),
		Name:      s.Name(),
		Email:     s.Email(),
		Phone:     s.Phone(),
		Address:   s.Address(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
	}
}

func fromSupplierView(v queries.SupplierView) supplierResponse {
	return supplierResponse{
		ID:        v.ID.String(),
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		Status:    v.Status.String(),
		CreatedAt: v.CreatedAt,
	}
}

func toBookingResponse(b *booking.Booking) bookingResponse {
	s := b.Snapshot()
	return bookingResponse{
		ID:               s.ID.String(),
		UserID:           s.UserID.String(),
		BookingType:      s.Trip.Type.String(),
		TravelDate:       s.Trip.TravelDate.Format(dateLayout),
		TravelTime:       s.Trip.TravelTime,
		Route:            s.Trip.Route,
		NumPassengers:    s.Trip.NumPassengers,
		VehicleType:      s.Trip.VehicleType,
		VehiclePlate:     s.Trip.VehiclePlate,
		CargoDescription: s.Trip.CargoDescription,
		CargoWeightKg:    s.Trip.CargoWeightKg,
		AmountPaid:       s.Payment.AmountPaid.String(),
		PaymentMethod:    s.Payment.Method.String(),
		TransactionID:    s.Payment.TransactionID,
		PaymentStatus:    s.PaymentStatus.String(),
		BookingStatus:    s.Status.String(),
		FerryName:        s.FerryName,
		CreatedAt:        s.CreatedAt,
	}
}

func fromBookingView(v queries.BookingView) bookingResponse {
	return bookingResponse{
		ID:               v.ID.String(),
		UserID:           v.UserID.String(),
		BookingType:      v.Type.String(),
		TravelDate:       v.TravelDate.Format(dateLayout),
		TravelTime:       v.TravelTime,
		Route:            v.Route,
		NumPassengers:    v.NumPassengers,
		VehicleType:      v.VehicleType,
		VehiclePlate:     v.VehiclePlate,
		CargoDescription: v.CargoDescription,
		CargoWeightKg:    v.CargoWeightKg,
		AmountPaid:       v.AmountPaid.String(),
		PaymentMethod:    v.PaymentMethod.String(),
		TransactionID:    v.TransactionID,
		PaymentStatus:    v.PaymentStatus.String(),
		BookingStatus:    v.Status.String(),
		FerryName:        v.FerryName,
		CreatedAt:        v.CreatedAt,
	}
}

func fromBookingPage(r queries.GetBookingsQueryResponse) bookingPageResponse {
	resp := bookingPageResponse{
		Bookings:   make([]bookingResponse, len(r.Bookings)),
		Total:      r.Total,
		Page:       r.Page,
		TotalPages: r.TotalPages,
	}
	for i, b := range r.Bookings {
		resp.Bookings[i] = fromBookingView(b)
	}
	return resp
}

func toChatMessageResponse(m *chat.Message) chatMessageResponse {
	return chatMessageResponse{
		ID:        m.ID().String(),
		RoomID:    m.RoomID(),
		Sender:    m.Sender(),
		Message:   m.Body(),
		Timestamp: m.SentAt(),
	}
}

func fromChatMessageView(v queries.ChatMessageView) chatMessageResponse {
	return chatMessageResponse{
		ID:        v.ID.String(),
		RoomID:    v.RoomID,
		Sender:    v.Sender,
		Message:   v.Message,
		Timestamp: v.Timestamp,
	}
}
