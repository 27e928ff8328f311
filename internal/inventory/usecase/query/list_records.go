package query

import (
	"github.com/myduka/myduka-backend/internal/inventory/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ListRecordsQuery represents listing inventory records
type ListRecordsQuery struct {
	Actor  userdomain.Actor
	Limit  int
	Offset int
}

// ListRecordsHandler handles inventory record listing
type ListRecordsHandler struct {
	records domain.InventoryRepository
}

// NewListRecordsHandler creates a new list records handler
func NewListRecordsHandler(records domain.InventoryRepository) *ListRecordsHandler {
	return &ListRecordsHandler{records: records}
}

// Handle lists records scoped to the caller: the merchant sees every store,
// admins their store, clerks only their own entries
func (h *ListRecordsHandler) Handle(q ListRecordsQuery) ([]domain.InventoryRecord, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	switch q.Actor.Role {
	case userdomain.RoleMerchant:
		return h.records.FindAll(limit, q.Offset)
	case userdomain.RoleAdmin:
		if q.Actor.StoreID == nil {
			return []domain.InventoryRecord{}, nil
		}
		return h.records.FindByStore(*q.Actor.StoreID, limit, q.Offset)
	case userdomain.RoleClerk:
		return h.records.FindByClerk(q.Actor.ID, limit, q.Offset)
	default:
		return nil, userdomain.ErrForbidden
	}
}
