package db

// ClaimedMessage is a queued message handed to exactly one consumer.
type ClaimedMessage struct {
	ID      int64
	Payload string
}

type ProcessedOrder struct {
	OrderID     string
	Payload     string
	ProcessedAt string
}

type Hotel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Category string `json:"category"`
}

type RoomType struct {
	ID               int64  `json:"id"`
	HotelPropertyID  int64  `json:"hotel_property_id"`
	Name             string `json:"name"`
	Capacity         int    `json:"capacity"`
	BedConfiguration string `json:"bed_configuration"`
}

type RatePlan struct {
	ID                 int64   `json:"id"`
	RoomTypeID         int64   `json:"room_type_id"`
	Name               string  `json:"name"`
	Currency           string  `json:"currency"`
	BasePrice          float64 `json:"base_price"`
	Refundable         bool    `json:"refundable"`
	CancellationPolicy string  `json:"cancellation_policy"`
}

type InventoryItem struct {
	ID                int64  `json:"id"`
	RoomTypeID        int64  `json:"room_type_id"`
	RatePlanID        int64  `json:"rate_plan_id"`
	Date              string `json:"date"`
	AvailableQuantity int    `json:"available_quantity"`
}
