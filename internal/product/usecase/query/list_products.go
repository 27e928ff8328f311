package query

import (
	"github.com/myduka/myduka-backend/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit  int
	Offset int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	return h.repo.FindAll(q.Limit, q.Offset)
}
