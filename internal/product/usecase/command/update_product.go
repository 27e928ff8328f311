package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// UpdateProductCommand represents the command to update a product. Pointer
// fields distinguish "unset" from zero values.
type UpdateProductCommand struct {
	Actor        userdomain.Actor
	ProductID    uint
	Name         string
	Description  *string
	BuyingPrice  *float64
	SellingPrice *float64
	IsActive     *bool
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command (merchant or admin)
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.Actor.Role != userdomain.RoleMerchant && cmd.Actor.Role != userdomain.RoleAdmin {
		return nil, userdomain.ErrForbidden
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" && cmd.Name != product.Name {
		if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
			return nil, domain.ErrNameTaken
		}
		product.Name = cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.BuyingPrice != nil {
		if *cmd.BuyingPrice < 0 {
			return nil, domain.ErrNegativePrice
		}
		product.BuyingPrice = *cmd.BuyingPrice
	}
	if cmd.SellingPrice != nil {
		if *cmd.SellingPrice < 0 {
			return nil, domain.ErrNegativePrice
		}
		product.SellingPrice = *cmd.SellingPrice
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}
