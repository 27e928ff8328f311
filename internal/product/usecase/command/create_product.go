package command

import (
	"fmt"

	"github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Actor        userdomain.Actor
	Name         string
	Description  string
	BuyingPrice  float64
	SellingPrice float64
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo  domain.ProductRepository
	users userdomain.UserRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, users userdomain.UserRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, users: users}
}

// Handle executes the create product command. Merchants own the product
// directly; admins create on behalf of their merchant.
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.BuyingPrice < 0 || cmd.SellingPrice < 0 {
		return nil, domain.ErrNegativePrice
	}

	var merchantID uint
	switch cmd.Actor.Role {
	case userdomain.RoleMerchant:
		merchantID = cmd.Actor.ID
	case userdomain.RoleAdmin:
		admin, err := h.users.FindByID(cmd.Actor.ID)
		if err != nil {
			return nil, err
		}
		if admin.MerchantID == nil {
			return nil, fmt.Errorf("admin has no merchant")
		}
		merchantID = *admin.MerchantID
	default:
		return nil, userdomain.ErrForbidden
	}

	if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
		return nil, domain.ErrNameTaken
	}

	product := &domain.Product{
		Name:         cmd.Name,
		Description:  cmd.Description,
		BuyingPrice:  cmd.BuyingPrice,
		SellingPrice: cmd.SellingPrice,
		MerchantID:   merchantID,
		IsActive:     true,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}
