package query

import (
	"github.com/myduka/myduka-backend/internal/inventory/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// GetRecordQuery represents fetching a single inventory record
type GetRecordQuery struct {
	Actor    userdomain.Actor
	RecordID uint
}

// GetRecordHandler handles single inventory record retrieval
type GetRecordHandler struct {
	records domain.InventoryRepository
}

// NewGetRecordHandler creates a new get record handler
func NewGetRecordHandler(records domain.InventoryRepository) *GetRecordHandler {
	return &GetRecordHandler{records: records}
}

// Handle returns a record visible to the caller: the merchant sees all,
// admins and clerks only records in their own store
func (h *GetRecordHandler) Handle(q GetRecordQuery) (*domain.InventoryRecord, error) {
	record, err := h.records.FindByID(q.RecordID)
	if err != nil {
		return nil, err
	}
	if q.Actor.Role != userdomain.RoleMerchant && !q.Actor.InStore(record.StoreID) {
		return nil, userdomain.ErrForbidden
	}
	return record, nil
}
