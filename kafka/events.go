package kafka

import "time"

// SaleRecordedEvent represents a completed sale
type SaleRecordedEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	TransactionID  uint      `json:"transaction_id"`
	ProductID      uint      `json:"product_id"`
	StoreID        uint      `json:"store_id"`
	ClerkID        uint      `json:"clerk_id"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	TotalAmount    float64   `json:"total_amount"`
	RemainingStock int       `json:"remaining_stock"`
	Timestamp      time.Time `json:"timestamp"`
}

// StockReceivedEvent represents a clerk recording received stock
type StockReceivedEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	RecordID         uint      `json:"record_id"`
	ProductID        uint      `json:"product_id"`
	StoreID          uint      `json:"store_id"`
	ClerkID          uint      `json:"clerk_id"`
	QuantityReceived int       `json:"quantity_received"`
	ItemsSpoilt      int       `json:"items_spoilt"`
	Timestamp        time.Time `json:"timestamp"`
}

// SupplyRespondedEvent represents an admin resolving a supply request
type SupplyRespondedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	RequestID   uint      `json:"request_id"`
	ProductID   uint      `json:"product_id"`
	StoreID     uint      `json:"store_id"`
	Status      string    `json:"status"`
	RespondedBy uint      `json:"responded_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded    = "sale.recorded"
	EventTypeStockReceived   = "stock.received"
	EventTypeSupplyResponded = "supply.responded"
)

// Kafka topics
const (
	TopicSaleRecorded    = "sale-recorded"
	TopicStockReceived   = "stock-received"
	TopicSupplyResponded = "supply-responded"
)
