package common

// CartItem is a single cart line as submitted by the shopper.
type CartItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type AddCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// OrderPayload is the message body enqueued at checkout and later persisted
// by the order worker. OrderID doubles as the idempotency key.
type OrderPayload struct {
	OrderID   string     `json:"order_id"`
	CreatedAt string     `json:"created_at"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
}

type CheckoutResponse struct {
	Status    string `json:"status"`
	OrderID   string `json:"order_id"`
	MessageID int64  `json:"message_id"`
}

// ProcessedOrderResponse is the order payload merged with the time the
// worker first persisted it.
type ProcessedOrderResponse struct {
	OrderID     string     `json:"order_id"`
	CreatedAt   string     `json:"created_at,omitempty"`
	Items       []CartItem `json:"items"`
	Total       float64    `json:"total"`
	ProcessedAt string     `json:"processed_at"`
}

type ListOrdersResponse struct {
	Orders []ProcessedOrderResponse `json:"orders"`
}

// ReservationJob is the message body enqueued by the reservation intake
// endpoint. Dates use the YYYY-MM-DD layout, EndDate is exclusive.
type ReservationJob struct {
	RoomTypeID int64  `json:"room_type_id"`
	RatePlanID int64  `json:"rate_plan_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type ReservationAcceptedResponse struct {
	Status    string `json:"status"`
	MessageID int64  `json:"message_id"`
}

type NewHotelRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Category string `json:"category"`
}

type NewRoomTypeRequest struct {
	HotelPropertyID  int64  `json:"hotel_property_id"`
	Name             string `json:"name"`
	Capacity         int    `json:"capacity"`
	BedConfiguration string `json:"bed_configuration"`
}

type NewRatePlanRequest struct {
	RoomTypeID         int64   `json:"room_type_id"`
	Name               string  `json:"name"`
	Currency           string  `json:"currency"`
	BasePrice          float64 `json:"base_price"`
	Refundable         bool    `json:"refundable"`
	CancellationPolicy string  `json:"cancellation_policy"`
}

type NewInventoryItemRequest struct {
	RoomTypeID        int64  `json:"room_type_id"`
	RatePlanID        int64  `json:"rate_plan_id"`
	Date              string `json:"date"`
	AvailableQuantity int    `json:"available_quantity"`
}

type HealthResponse struct {
	Status  string           `json:"status"`
	Backlog map[string]int64 `json:"backlog"`
}
