package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	inventorydomain "github.com/myduka/myduka-backend/internal/inventory/domain"
	"github.com/myduka/myduka-backend/internal/middleware"
	"github.com/myduka/myduka-backend/internal/transaction/domain"
	"github.com/myduka/myduka-backend/internal/transaction/usecase/command"
	"github.com/myduka/myduka-backend/internal/transaction/usecase/query"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// TransactionHandler handles HTTP requests for sales
type TransactionHandler struct {
	saleHandler   *command.RecordSaleHandler
	deleteHandler *command.DeleteTransactionHandler
	getHandler    *query.GetTransactionHandler
	listHandler   *query.ListTransactionsHandler
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactions domain.TransactionRepository,
	inventory inventorydomain.InventoryRepository,
	publisher command.EventPublisher,
) *TransactionHandler {
	return &TransactionHandler{
		saleHandler:   command.NewRecordSaleHandler(transactions, inventory, publisher),
		deleteHandler: command.NewDeleteTransactionHandler(transactions),
		getHandler:    query.NewGetTransactionHandler(transactions),
		listHandler:   query.NewListTransactionsHandler(transactions),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordSale handles POST /transactions
func (h *TransactionHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.saleHandler.Handle(r.Context(), command.RecordSaleCommand{
		Actor:     actor,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Sale recorded",
		Data:    txn,
	})
}

// Get handles GET /transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	txn, err := h.getHandler.Handle(query.GetTransactionQuery{Actor: actor, TransactionID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: txn})
}

// List handles GET /transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txns, err := h.listHandler.Handle(query.ListTransactionsQuery{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: txns})
}

// Delete handles DELETE /transactions/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteTransactionCommand{Actor: actor, TransactionID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Transaction deleted"})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
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

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	router.HandleFunc("/transactions", metrics.Instrument("/transactions", authn.RequireRoles(userdomain.RoleClerk)(h.RecordSale))).Methods("POST")
	router.HandleFunc("/transactions", metrics.Instrument("/transactions", authn.Authenticate(h.List))).Methods("GET")
	router.HandleFunc("/transactions/{id:[0-9]+}", metrics.Instrument("/transactions/{id}", authn.Authenticate(h.Get))).Methods("GET")
	router.HandleFunc("/transactions/{id:[0-9]+}", metrics.Instrument("/transactions/{id}", authn.RequireRoles(userdomain.RoleMerchant)(h.Delete))).Methods("DELETE")
}
