package query

import (
	"github.com/myduka/myduka-backend/internal/transaction/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ListTransactionsQuery represents listing transactions
type ListTransactionsQuery struct {
	Actor  userdomain.Actor
	Limit  int
	Offset int
}

// ListTransactionsHandler handles transaction listing
type ListTransactionsHandler struct {
	transactions domain.TransactionRepository
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(transactions domain.TransactionRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{transactions: transactions}
}

// Handle lists transactions scoped to the caller: the merchant sees every
// store, admins their store, clerks only their own sales
func (h *ListTransactionsHandler) Handle(q ListTransactionsQuery) ([]domain.Transaction, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	switch q.Actor.Role {
	case userdomain.RoleMerchant:
		return h.transactions.FindAll(limit, q.Offset)
	case userdomain.RoleAdmin:
		if q.Actor.StoreID == nil {
			return []domain.Transaction{}, nil
		}
		return h.transactions.FindByStore(*q.Actor.StoreID, limit, q.Offset)
	case userdomain.RoleClerk:
		return h.transactions.FindByClerk(q.Actor.ID, limit, q.Offset)
	default:
		return nil, userdomain.ErrForbidden
	}
}
