package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/middleware"
	"github.com/myduka/myduka-backend/internal/product/domain"
	"github.com/myduka/myduka-backend/internal/product/usecase/command"
	"github.com/myduka/myduka-backend/internal/product/usecase/query"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler
	getHandler    *query.GetProductHandler
	listHandler   *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(products domain.ProductRepository, users userdomain.UserRepository) *ProductHandler {
	return &ProductHandler{
		createHandler: command.NewCreateProductHandler(products, users),
		updateHandler: command.NewUpdateProductHandler(products),
		deleteHandler: command.NewDeleteProductHandler(products),
		getHandler:    query.NewGetProductHandler(products),
		listHandler:   query.NewListProductsHandler(products),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Actor:        actor,
		Name:         req.Name,
		Description:  req.Description,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ProductID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	products, err := h.listHandler.Handle(query.ListProductsQuery{Limit: limit, Offset: offset})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Description  *string  `json:"description,omitempty"`
		BuyingPrice  *float64 `json:"buying_price,omitempty"`
		SellingPrice *float64 `json:"selling_price,omitempty"`
		IsActive     *bool    `json:"is_active,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		Actor:        actor,
		ProductID:    id,
		Name:         req.Name,
		Description:  req.Description,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{Actor: actor, ProductID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, userdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNameTaken):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	managers := authn.RequireRoles(userdomain.RoleMerchant, userdomain.RoleAdmin)
	router.HandleFunc("/products", metrics.Instrument("/products", managers(h.Create))).Methods("POST")
	router.HandleFunc("/products", metrics.Instrument("/products", authn.Authenticate(h.List))).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", metrics.Instrument("/products/{id}", authn.Authenticate(h.Get))).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", metrics.Instrument("/products/{id}", managers(h.Update))).Methods("PUT")
	router.HandleFunc("/products/{id:[0-9]+}", metrics.Instrument("/products/{id}", authn.RequireRoles(userdomain.RoleMerchant)(h.Delete))).Methods("DELETE")
}
