package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/inventory/domain"
	"github.com/myduka/myduka-backend/internal/inventory/usecase/command"
	"github.com/myduka/myduka-backend/internal/inventory/usecase/query"
	"github.com/myduka/myduka-backend/internal/middleware"
	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// InventoryHandler handles HTTP requests for inventory records
type InventoryHandler struct {
	receiptHandler *command.RecordReceiptHandler
	adjustHandler  *command.AdjustRecordHandler
	deleteHandler  *command.DeleteRecordHandler
	getHandler     *query.GetRecordHandler
	listHandler    *query.ListRecordsHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	records domain.InventoryRepository,
	products productdomain.ProductRepository,
	publisher command.EventPublisher,
) *InventoryHandler {
	return &InventoryHandler{
		receiptHandler: command.NewRecordReceiptHandler(records, products, publisher),
		adjustHandler:  command.NewAdjustRecordHandler(records),
		deleteHandler:  command.NewDeleteRecordHandler(records),
		getHandler:     query.NewGetRecordHandler(records),
		listHandler:    query.NewListRecordsHandler(records),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordReceipt handles POST /inventory
func (h *InventoryHandler) RecordReceipt(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		ProductID        uint   `json:"product_id"`
		QuantityReceived int    `json:"quantity_received"`
		ItemsSpoilt      int    `json:"items_spoilt"`
		PaymentStatus    string `json:"payment_status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.receiptHandler.Handle(r.Context(), command.RecordReceiptCommand{
		Actor:            actor,
		ProductID:        req.ProductID,
		QuantityReceived: req.QuantityReceived,
		ItemsSpoilt:      req.ItemsSpoilt,
		PaymentStatus:    req.PaymentStatus,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock receipt recorded",
		Data:    record,
	})
}

// Get handles GET /inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.getHandler.Handle(query.GetRecordQuery{Actor: actor, RecordID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: record})
}

// List handles GET /inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listHandler.Handle(query.ListRecordsQuery{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

// Adjust handles PUT /inventory/{id}
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req struct {
		QuantityReceived *int     `json:"quantity_received,omitempty"`
		ItemsInStock     *int     `json:"items_in_stock,omitempty"`
		ItemsSpoilt      *int     `json:"items_spoilt,omitempty"`
		PaymentStatus    *string  `json:"payment_status,omitempty"`
		BuyingPrice      *float64 `json:"buying_price,omitempty"`
		SellingPrice     *float64 `json:"selling_price,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.adjustHandler.Handle(command.AdjustRecordCommand{
		Actor:            actor,
		RecordID:         id,
		QuantityReceived: req.QuantityReceived,
		ItemsInStock:     req.ItemsInStock,
		ItemsSpoilt:      req.ItemsSpoilt,
		PaymentStatus:    req.PaymentStatus,
		BuyingPrice:      req.BuyingPrice,
		SellingPrice:     req.SellingPrice,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: record})
}

// Delete handles DELETE /inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteRecordCommand{Actor: actor, RecordID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Inventory record deleted"})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, productdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
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

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	router.HandleFunc("/inventory", metrics.Instrument("/inventory", authn.RequireRoles(userdomain.RoleClerk)(h.RecordReceipt))).Methods("POST")
	router.HandleFunc("/inventory", metrics.Instrument("/inventory", authn.Authenticate(h.List))).Methods("GET")
	router.HandleFunc("/inventory/{id:[0-9]+}", metrics.Instrument("/inventory/{id}", authn.Authenticate(h.Get))).Methods("GET")
	router.HandleFunc("/inventory/{id:[0-9]+}", metrics.Instrument("/inventory/{id}", authn.Authenticate(h.Adjust))).Methods("PUT")
	router.HandleFunc("/inventory/{id:[0-9]+}", metrics.Instrument("/inventory/{id}", authn.RequireRoles(userdomain.RoleMerchant)(h.Delete))).Methods("DELETE")
}
