package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/inventory/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// AdjustRecordCommand represents updating an existing inventory record. All
// fields are optional; which ones a caller may touch depends on its role.
type AdjustRecordCommand struct {
	Actor            userdomain.Actor
	RecordID         uint
	QuantityReceived *int     `json:"quantity_received,omitempty"`
	ItemsInStock     *int     `json:"items_in_stock,omitempty"`
	ItemsSpoilt      *int     `json:"items_spoilt,omitempty"`
	PaymentStatus    *string  `json:"payment_status,omitempty"`
	BuyingPrice      *float64 `json:"buying_price,omitempty"`
	SellingPrice     *float64 `json:"selling_price,omitempty"`
}

// AdjustRecordHandler handles inventory record adjustments
type AdjustRecordHandler struct {
	records domain.InventoryRepository
}

// NewAdjustRecordHandler creates a new adjust record handler
func NewAdjustRecordHandler(records domain.InventoryRepository) *AdjustRecordHandler {
	return &AdjustRecordHandler{records: records}
}

// Handle applies an adjustment. Clerks may correct stock and spoilt counts on
// records in their store, admins may settle payment status for their store,
// and the merchant may change any field.
func (h *AdjustRecordHandler) Handle(cmd AdjustRecordCommand) (*domain.InventoryRecord, error) {
	record, err := h.records.FindByID(cmd.RecordID)
	if err != nil {
		return nil, err
	}

	switch cmd.Actor.Role {
	case userdomain.RoleMerchant:
		// Full access
	case userdomain.RoleAdmin:
		if !cmd.Actor.InStore(record.StoreID) {
			return nil, userdomain.ErrForbidden
		}
		if cmd.QuantityReceived != nil || cmd.ItemsInStock != nil || cmd.ItemsSpoilt != nil ||
			cmd.BuyingPrice != nil || cmd.SellingPrice != nil {
			return nil, userdomain.ErrForbidden
		}
	case userdomain.RoleClerk:
		if !cmd.Actor.InStore(record.StoreID) {
			return nil, userdomain.ErrForbidden
		}
		if cmd.QuantityReceived != nil || cmd.PaymentStatus != nil ||
			cmd.BuyingPrice != nil || cmd.SellingPrice != nil {
			return nil, userdomain.ErrForbidden
		}
	default:
		return nil, userdomain.ErrForbidden
	}

	if cmd.QuantityReceived != nil {
		if *cmd.QuantityReceived < 0 {
			return nil, domain.ErrNegativeQuantity
		}
		record.QuantityReceived = *cmd.QuantityReceived
	}
	if cmd.ItemsInStock != nil {
		if *cmd.ItemsInStock < 0 {
			return nil, domain.ErrNegativeQuantity
		}
		record.ItemsInStock = *cmd.ItemsInStock
	}
	if cmd.ItemsSpoilt != nil {
		if *cmd.ItemsSpoilt < 0 {
			return nil, domain.ErrNegativeQuantity
		}
		record.ItemsSpoilt = *cmd.ItemsSpoilt
	}
	if cmd.PaymentStatus != nil {
		if !domain.ValidPaymentStatus(*cmd.PaymentStatus) {
			return nil, fmt.Errorf("invalid payment status: %s", *cmd.PaymentStatus)
		}
		record.PaymentStatus = *cmd.PaymentStatus
	}
	if cmd.BuyingPrice != nil {
		if *cmd.BuyingPrice < 0 {
			return nil, fmt.Errorf("buying price cannot be negative")
		}
		record.BuyingPrice = *cmd.BuyingPrice
	}
	if cmd.SellingPrice != nil {
		if *cmd.SellingPrice < 0 {
			return nil, fmt.Errorf("selling price cannot be negative")
		}
		record.SellingPrice = *cmd.SellingPrice
	}

	if err := h.records.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update inventory record: %w", err)
	}
	return record, nil
}
