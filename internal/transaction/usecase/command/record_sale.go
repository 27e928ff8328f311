package command

import (
	"context"
	"errors"
	"fmt"

	inventorydomain "github.com/myduka/myduka-backend/internal/inventory/domain"
	"github.com/myduka/myduka-backend/internal/transaction/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/kafka"
	"github.com/myduka/myduka-backend/pkg/logger"
)

// EventPublisher publishes sale events. Nil-safe via the optional wiring in
// the handler; Kafka being down must not block sales.
type EventPublisher interface {
	PublishSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error
}

// RecordSaleCommand represents a clerk selling stock
type RecordSaleCommand struct {
	Actor     userdomain.Actor
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// RecordSaleHandler handles point-of-sale recording
type RecordSaleHandler struct {
	transactions domain.TransactionRepository
	inventory    inventorydomain.InventoryRepository
	publisher    EventPublisher
}

// NewRecordSaleHandler creates a new record sale handler. publisher may be nil
// when no broker is configured.
func NewRecordSaleHandler(
	transactions domain.TransactionRepository,
	inventory inventorydomain.InventoryRepository,
	publisher EventPublisher,
) *RecordSaleHandler {
	return &RecordSaleHandler{
		transactions: transactions,
		inventory:    inventory,
		publisher:    publisher,
	}
}

// Handle records a sale against the latest inventory record for the product
// in the clerk's store. The sale price is the record's snapshotted selling
// price. Stock is decremented atomically; oversell fails the whole sale.
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) (*domain.Transaction, error) {
	if cmd.Actor.Role != userdomain.RoleClerk || cmd.Actor.StoreID == nil {
		return nil, userdomain.ErrForbidden
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	record, err := h.inventory.FindLatest(cmd.ProductID, *cmd.Actor.StoreID)
	if err != nil {
		if errors.Is(err, inventorydomain.ErrNotFound) {
			return nil, inventorydomain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	if record.ItemsInStock < cmd.Quantity {
		return nil, inventorydomain.ErrInsufficientStock
	}

	txn := &domain.Transaction{
		ProductID:   cmd.ProductID,
		StoreID:     *cmd.Actor.StoreID,
		ClerkID:     &cmd.Actor.ID,
		Quantity:    cmd.Quantity,
		UnitPrice:   record.SellingPrice,
		TotalAmount: record.SellingPrice * float64(cmd.Quantity),
	}

	if err := h.transactions.RecordSale(txn, record.ID); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.SaleRecordedEvent{
			TransactionID:  txn.ID,
			ProductID:      txn.ProductID,
			StoreID:        txn.StoreID,
			ClerkID:        cmd.Actor.ID,
			Quantity:       txn.Quantity,
			UnitPrice:      txn.UnitPrice,
			TotalAmount:    txn.TotalAmount,
			RemainingStock: record.ItemsInStock - txn.Quantity,
		}
		if err := h.publisher.PublishSaleRecorded(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("transaction_id", txn.ID).
				Msg("Failed to publish sale event")
		}
	}

	return txn, nil
}
