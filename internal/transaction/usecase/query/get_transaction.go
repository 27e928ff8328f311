package query

import (
	"github.com/myduka/myduka-backend/internal/transaction/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// GetTransactionQuery represents fetching a single transaction
type GetTransactionQuery struct {
	Actor         userdomain.Actor
	TransactionID uint
}

// GetTransactionHandler handles single transaction retrieval
type GetTransactionHandler struct {
	transactions domain.TransactionRepository
}

// NewGetTransactionHandler creates a new get transaction handler
func NewGetTransactionHandler(transactions domain.TransactionRepository) *GetTransactionHandler {
	return &GetTransactionHandler{transactions: transactions}
}

// Handle returns a transaction visible to the caller
func (h *GetTransactionHandler) Handle(q GetTransactionQuery) (*domain.Transaction, error) {
	txn, err := h.transactions.FindByID(q.TransactionID)
	if err != nil {
		return nil, err
	}
	if q.Actor.Role != userdomain.RoleMerchant && !q.Actor.InStore(txn.StoreID) {
		return nil, userdomain.ErrForbidden
	}
	return txn, nil
}
