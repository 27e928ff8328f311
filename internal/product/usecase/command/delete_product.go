package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	Actor     userdomain.Actor
	ProductID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command (merchant only, own products)
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.Actor.Role != userdomain.RoleMerchant {
		return userdomain.ErrForbidden
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return err
	}
	if product.MerchantID != cmd.Actor.ID {
		return userdomain.ErrForbidden
	}

	if err := h.repo.Delete(cmd.ProductID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
