package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/middleware"
	"github.com/myduka/myduka-backend/internal/store/domain"
	"github.com/myduka/myduka-backend/internal/store/usecase/command"
	"github.com/myduka/myduka-backend/internal/store/usecase/query"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

// StoreHandler handles HTTP requests for stores
type StoreHandler struct {
	createHandler *command.CreateStoreHandler
	updateHandler *command.UpdateStoreHandler
	deleteHandler *command.DeleteStoreHandler
	getHandler    *query.GetStoreHandler
	listHandler   *query.ListStoresHandler
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(stores domain.StoreRepository) *StoreHandler {
	return &StoreHandler{
		createHandler: command.NewCreateStoreHandler(stores),
		updateHandler: command.NewUpdateStoreHandler(stores),
		deleteHandler: command.NewDeleteStoreHandler(stores),
		getHandler:    query.NewGetStoreHandler(stores),
		listHandler:   query.NewListStoresHandler(stores),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Create handles POST /stores
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store, err := h.createHandler.Handle(command.CreateStoreCommand{
		Actor:    actor,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Store created successfully",
		Data:    store,
	})
}

// Get handles GET /stores/{id}
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	store, err := h.getHandler.Handle(query.GetStoreQuery{Actor: actor, StoreID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: store})
}

// List handles GET /stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	stores, err := h.listHandler.Handle(query.ListStoresQuery{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stores})
}

// Update handles PUT /stores/{id}
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		IsActive *bool  `json:"is_active,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store, err := h.updateHandler.Handle(command.UpdateStoreCommand{
		Actor:    actor,
		StoreID:  id,
		Name:     req.Name,
		Location: req.Location,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: store})
}

// Delete handles DELETE /stores/{id}
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteStoreCommand{Actor: actor, StoreID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Store deleted successfully"})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
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

// RegisterRoutes registers store routes
func (h *StoreHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	merchantOnly := authn.RequireRoles(userdomain.RoleMerchant)
	router.HandleFunc("/stores", metrics.Instrument("/stores", merchantOnly(h.Create))).Methods("POST")
	router.HandleFunc("/stores", metrics.Instrument("/stores", authn.Authenticate(h.List))).Methods("GET")
	router.HandleFunc("/stores/{id:[0-9]+}", metrics.Instrument("/stores/{id}", authn.Authenticate(h.Get))).Methods("GET")
	router.HandleFunc("/stores/{id:[0-9]+}", metrics.Instrument("/stores/{id}", authn.Authenticate(h.Update))).Methods("PUT")
	router.HandleFunc("/stores/{id:[0-9]+}", metrics.Instrument("/stores/{id}", merchantOnly(h.Delete))).Methods("DELETE")
}
