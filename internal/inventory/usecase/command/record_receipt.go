package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/myduka/myduka-backend/internal/inventory/domain"
	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/kafka"
	"github.com/myduka/myduka-backend/pkg/logger"
)

// EventPublisher publishes stock events. Optional; a down broker must not
// block receipts.
type EventPublisher interface {
	PublishStockReceived(ctx context.Context, event kafka.StockReceivedEvent) error
}

// RecordReceiptCommand represents a clerk recording received stock
type RecordReceiptCommand struct {
	Actor            userdomain.Actor
	ProductID        uint   `json:"product_id"`
	QuantityReceived int    `json:"quantity_received"`
	ItemsSpoilt      int    `json:"items_spoilt"`
	PaymentStatus    string `json:"payment_status"`
}

// RecordReceiptHandler handles stock receipt recording
type RecordReceiptHandler struct {
	records   domain.InventoryRepository
	products  productdomain.ProductRepository
	publisher EventPublisher
}

// NewRecordReceiptHandler creates a new record receipt handler. publisher may
// be nil when no broker is configured.
func NewRecordReceiptHandler(records domain.InventoryRepository, products productdomain.ProductRepository, publisher EventPublisher) *RecordReceiptHandler {
	return &RecordReceiptHandler{records: records, products: products, publisher: publisher}
}

// Handle records a stock receipt against the clerk's store, snapshotting the
// product's prices at record time
func (h *RecordReceiptHandler) Handle(ctx context.Context, cmd RecordReceiptCommand) (*domain.InventoryRecord, error) {
	if cmd.Actor.Role != userdomain.RoleClerk || cmd.Actor.StoreID == nil {
		return nil, userdomain.ErrForbidden
	}
	if cmd.QuantityReceived <= 0 {
		return nil, fmt.Errorf("quantity received must be positive")
	}
	if cmd.ItemsSpoilt < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	if cmd.ItemsSpoilt > cmd.QuantityReceived {
		return nil, fmt.Errorf("spoilt items cannot exceed quantity received")
	}

	status := cmd.PaymentStatus
	if status == "" {
		status = domain.PaymentUnpaid
	}
	if !domain.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}

	product, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		if errors.Is(err, productdomain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	record := &domain.InventoryRecord{
		ProductID:        product.ID,
		StoreID:          *cmd.Actor.StoreID,
		ClerkID:          &cmd.Actor.ID,
		QuantityReceived: cmd.QuantityReceived,
		ItemsInStock:     cmd.QuantityReceived - cmd.ItemsSpoilt,
		ItemsSpoilt:      cmd.ItemsSpoilt,
		PaymentStatus:    status,
		BuyingPrice:      product.BuyingPrice,
		SellingPrice:     product.SellingPrice,
	}

	if err := h.records.Create(record); err != nil {
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}

	if h.publisher != nil {
		event := kafka.StockReceivedEvent{
			RecordID:         record.ID,
			ProductID:        record.ProductID,
			StoreID:          record.StoreID,
			ClerkID:          cmd.Actor.ID,
			QuantityReceived: record.QuantityReceived,
			ItemsSpoilt:      record.ItemsSpoilt,
		}
		if err := h.publisher.PublishStockReceived(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("record_id", record.ID).
				Msg("Failed to publish stock received event")
		}
	}

	return record, nil
}
