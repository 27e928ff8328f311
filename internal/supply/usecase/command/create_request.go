package command

import (
	"errors"
	"fmt"

	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	"github.com/myduka/myduka-backend/internal/supply/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// CreateRequestCommand represents a clerk requesting restock
type CreateRequestCommand struct {
	Actor     userdomain.Actor
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateRequestHandler handles supply request creation
type CreateRequestHandler struct {
	requests domain.SupplyRequestRepository
	products productdomain.ProductRepository
}

// NewCreateRequestHandler creates a new create request handler
func NewCreateRequestHandler(requests domain.SupplyRequestRepository, products productdomain.ProductRepository) *CreateRequestHandler {
	return &CreateRequestHandler{requests: requests, products: products}
}

// Handle opens a pending supply request in the clerk's store
func (h *CreateRequestHandler) Handle(cmd CreateRequestCommand) (*domain.SupplyRequest, error) {
	if cmd.Actor.Role != userdomain.RoleClerk || cmd.Actor.StoreID == nil {
		return nil, userdomain.ErrForbidden
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		if errors.Is(err, productdomain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	request := &domain.SupplyRequest{
		ProductID: cmd.ProductID,
		StoreID:   *cmd.Actor.StoreID,
		ClerkID:   cmd.Actor.ID,
		Quantity:  cmd.Quantity,
		Status:    domain.StatusPending,
	}

	if err := h.requests.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create supply request: %w", err)
	}
	return request, nil
}
