package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/invitation/domain"
	"github.com/myduka/myduka-backend/internal/invitation/usecase/command"
	"github.com/myduka/myduka-backend/internal/invitation/usecase/query"
	"github.com/myduka/myduka-backend/internal/middleware"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/pkg/mailer"
)

// InvitationHandler handles HTTP requests for admin invitations
type InvitationHandler struct {
	createHandler *command.CreateInvitationHandler
	acceptHandler *command.AcceptInvitationHandler
	listHandler   *query.ListInvitationsHandler
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(
	invitations domain.InvitationRepository,
	users userdomain.UserRepository,
	mail mailer.Mailer,
	frontendURL string,
	expiry time.Duration,
) *InvitationHandler {
	return &InvitationHandler{
		createHandler: command.NewCreateInvitationHandler(invitations, users, mail, frontendURL, expiry),
		acceptHandler: command.NewAcceptInvitationHandler(invitations, users),
		listHandler:   query.NewListInvitationsHandler(invitations),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Create handles POST /auth/invitations
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		Email   string `json:"email"`
		StoreID *uint  `json:"store_id,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invitation, err := h.createHandler.Handle(r.Context(), command.CreateInvitationCommand{
		Actor:   actor,
		Email:   req.Email,
		StoreID: req.StoreID,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Invitation sent",
		Data:    invitation,
	})
}

// Accept handles POST /auth/invitations/accept
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Token may also arrive as a query parameter from the emailed link
	if req.Token == "" {
		req.Token = r.URL.Query().Get("token")
	}

	user, err := h.acceptHandler.Handle(command.AcceptInvitationCommand{
		Token:    req.Token,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Admin registered successfully",
		Data:    user,
	})
}

// List handles GET /auth/invitations
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	invitations, err := h.listHandler.Handle(query.ListInvitationsQuery{
		Actor:  actor,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: invitations})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, userdomain.ErrEmailTaken), errors.Is(err, userdomain.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExpired), errors.Is(err, domain.ErrUsed):
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}

// RegisterRoutes registers invitation routes
func (h *InvitationHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	merchantOnly := authn.RequireRoles(userdomain.RoleMerchant)
	router.HandleFunc("/auth/invitations", metrics.Instrument("/auth/invitations", merchantOnly(h.Create))).Methods("POST")
	router.HandleFunc("/auth/invitations", metrics.Instrument("/auth/invitations", merchantOnly(h.List))).Methods("GET")
	router.HandleFunc("/auth/invitations/accept", metrics.Instrument("/auth/invitations/accept", h.Accept)).Methods("POST")
}
