package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/middleware"
	productdomain "github.com/myduka/myduka-backend/internal/product/domain"
	"github.com/myduka/myduka-backend/internal/supply/domain"
	"github.com/myduka/myduka-backend/internal/supply/usecase/command"
	"github.com/myduka/myduka-backend/internal/supply/usecase/query"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// SupplyHandler handles HTTP requests for supply requests
type SupplyHandler struct {
	createHandler  *command.CreateRequestHandler
	respondHandler *command.RespondRequestHandler
	deleteHandler  *command.DeleteRequestHandler
	getHandler     *query.GetRequestHandler
	listHandler    *query.ListRequestsHandler
}

// NewSupplyHandler creates a new supply request handler
func NewSupplyHandler(
	requests domain.SupplyRequestRepository,
	products productdomain.ProductRepository,
	publisher command.EventPublisher,
) *SupplyHandler {
	return &SupplyHandler{
		createHandler:  command.NewCreateRequestHandler(requests, products),
		respondHandler: command.NewRespondRequestHandler(requests, publisher),
		deleteHandler:  command.NewDeleteRequestHandler(requests),
		getHandler:     query.NewGetRequestHandler(requests),
		listHandler:    query.NewListRequestsHandler(requests),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Create handles POST /supply-requests
func (h *SupplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.createHandler.Handle(command.CreateRequestCommand{
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
		Message: "Supply request created",
		Data:    request,
	})
}

// Get handles GET /supply-requests/{id}
func (h *SupplyHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	request, err := h.getHandler.Handle(query.GetRequestQuery{Actor: actor, RequestID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: request})
}

// List handles GET /supply-requests
func (h *SupplyHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.listHandler.Handle(query.ListRequestsQuery{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// Respond handles PUT /supply-requests/{id}/status
func (h *SupplyHandler) Respond(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.respondHandler.Handle(r.Context(), command.RespondRequestCommand{
		Actor:     actor,
		RequestID: id,
		Status:    req.Status,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: request})
}

// Delete handles DELETE /supply-requests/{id}
func (h *SupplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteRequestCommand{Actor: actor, RequestID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Supply request deleted"})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, productdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRequestClosed):
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

// RegisterRoutes registers supply request routes
func (h *SupplyHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	router.HandleFunc("/supply-requests", metrics.Instrument("/supply-requests", authn.RequireRoles(userdomain.RoleClerk)(h.Create))).Methods("POST")
	router.HandleFunc("/supply-requests", metrics.Instrument("/supply-requests", authn.Authenticate(h.List))).Methods("GET")
	router.HandleFunc("/supply-requests/{id:[0-9]+}", metrics.Instrument("/supply-requests/{id}", authn.Authenticate(h.Get))).Methods("GET")
	router.HandleFunc("/supply-requests/{id:[0-9]+}/status", metrics.Instrument("/supply-requests/{id}/status", authn.RequireRoles(userdomain.RoleAdmin)(h.Respond))).Methods("PUT")
	router.HandleFunc("/supply-requests/{id:[0-9]+}", metrics.Instrument("/supply-requests/{id}", authn.RequireRoles(userdomain.RoleMerchant)(h.Delete))).Methods("DELETE")
}
