package query

import (
	"github.com/myduka/myduka-backend/internal/product/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ProductID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query. Any authenticated role may view
// products.
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindByID(q.ProductID)
}
