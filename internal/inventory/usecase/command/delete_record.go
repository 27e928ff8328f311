package command

import (
	"github.com/myduka/myduka-backend/internal/inventory/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteRecordCommand represents removing an inventory record
type DeleteRecordCommand struct {
	Actor    userdomain.Actor
	RecordID uint
}

// DeleteRecordHandler handles inventory record deletion
type DeleteRecordHandler struct {
	records domain.InventoryRepository
}

// NewDeleteRecordHandler creates a new delete record handler
func NewDeleteRecordHandler(records domain.InventoryRepository) *DeleteRecordHandler {
	return &DeleteRecordHandler{records: records}
}

// Handle deletes an inventory record. Merchant only.
func (h *DeleteRecordHandler) Handle(cmd DeleteRecordCommand) error {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return userdomain.ErrForbidden
	}
	return h.records.Delete(cmd.RecordID)
}
