package command

import (
	"github.com/myduka/myduka-backend/internal/transaction/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteTransactionCommand represents removing a transaction
type DeleteTransactionCommand struct {
	Actor         userdomain.Actor
	TransactionID uint
}

// DeleteTransactionHandler handles transaction deletion
type DeleteTransactionHandler struct {
	transactions domain.TransactionRepository
}

// NewDeleteTransactionHandler creates a new delete transaction handler
func NewDeleteTransactionHandler(transactions domain.TransactionRepository) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{transactions: transactions}
}

// Handle deletes a transaction. Merchant only; stock is not restored, a
// correcting inventory adjustment is the clerk's job.
func (h *DeleteTransactionHandler) Handle(cmd DeleteTransactionCommand) error {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return userdomain.ErrForbidden
	}
	return h.transactions.Delete(cmd.TransactionID)
}
