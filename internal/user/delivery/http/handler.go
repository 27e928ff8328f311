package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/middleware"
	storedomain "github.com/myduka/myduka-backend/internal/store/domain"
	"github.com/myduka/myduka-backend/internal/user/domain"
	"github.com/myduka/myduka-backend/internal/user/usecase/command"
	"github.com/myduka/myduka-backend/internal/user/usecase/query"
	"github.com/myduka/myduka-backend/pkg/auth"
	"github.com/myduka/myduka-backend/pkg/logger"
)

// UserHandler handles HTTP requests for authentication and user management
type UserHandler struct {
	// Command handlers
	registerHandler     *command.RegisterMerchantHandler
	loginHandler        *command.LoginUserHandler
	createAdminHandler  *command.CreateAdminHandler
	createClerkHandler  *command.CreateClerkHandler
	updateHandler       *command.UpdateUserHandler
	deleteHandler       *command.DeleteUserHandler
	toggleActiveHandler *command.ToggleActiveHandler
	assignStoreHandler  *command.AssignStoreHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	users     domain.UserRepository
	tokens    *auth.TokenManager
	blacklist auth.Blacklist
}

// NewUserHandler creates a new user handler
func NewUserHandler(users domain.UserRepository, stores storedomain.StoreRepository, tokens *auth.TokenManager, blacklist auth.Blacklist) *UserHandler {
	return &UserHandler{
		registerHandler:     command.NewRegisterMerchantHandler(users),
		loginHandler:        command.NewLoginUserHandler(users, tokens),
		createAdminHandler:  command.NewCreateAdminHandler(users),
		createClerkHandler:  command.NewCreateClerkHandler(users),
		updateHandler:       command.NewUpdateUserHandler(users),
		deleteHandler:       command.NewDeleteUserHandler(users),
		toggleActiveHandler: command.NewToggleActiveHandler(users),
		assignStoreHandler:  command.NewAssignStoreHandler(users, stores),
		getUserHandler:      query.NewGetUserHandler(users),
		listHandler:         query.NewListUsersHandler(users),
		users:               users,
		tokens:              tokens,
		blacklist:           blacklist,
	}
}

// Response is the JSON envelope for all user endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterMerchantCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Merchant registered successfully",
		Data:    user,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	response, err := h.loginHandler.Handle(cmd)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) || errors.Is(err, domain.ErrInactive) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: response})
}

// Logout handles POST /auth/logout. The presented token's jti goes on the
// blacklist until its natural expiry.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 0 {
		ttl = 0
	}
	if err := h.blacklist.Revoke(r.Context(), claims.ID, ttl); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to revoke token")
		respondError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out successfully"})
}

// Refresh handles POST /auth/refresh
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	revoked, err := h.blacklist.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to verify token")
		return
	}
	if revoked {
		respondError(w, http.StatusUnauthorized, "Token has been revoked")
		return
	}

	user, err := h.users.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		respondError(w, http.StatusUnauthorized, "Account not available")
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"access_token": accessToken},
	})
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{Actor: actor, TargetID: actor.ID})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// UpdateProfile handles PUT /users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateUserCommand{
		Actor:    actor,
		TargetID: actor.ID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.updateHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// CreateAdmin handles POST /users/admins
func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		StoreID  *uint  `json:"store_id,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateAdminCommand{
		Actor:    actor,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		StoreID:  req.StoreID,
	}

	user, err := h.createAdminHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Admin created successfully",
		Data:    user,
	})
}

// CreateClerk handles POST /users/clerks
func (h *UserHandler) CreateClerk(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateClerkCommand{
		Actor:    actor,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.createClerkHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Clerk created successfully",
		Data:    user,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := query.ListUsersQuery{
		Actor:  actor,
		Role:   r.URL.Query().Get("role"),
		Limit:  limit,
		Offset: offset,
	}

	users, err := h.listHandler.Handle(q)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: users})
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{Actor: actor, TargetID: id})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateUserCommand{
		Actor:    actor,
		TargetID: id,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.updateHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{Actor: actor, TargetID: id}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
}

// ToggleActive handles PUT /users/{id}/active
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.toggleActiveHandler.Handle(command.ToggleActiveCommand{
		Actor:    actor,
		TargetID: id,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// AssignStore handles PUT /users/{id}/store
func (h *UserHandler) AssignStore(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		StoreID uint `json:"store_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.assignStoreHandler.Handle(command.AssignStoreCommand{
		Actor:    actor,
		TargetID: id,
		StoreID:  req.StoreID,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, storedomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrMerchantExists):
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

// RegisterRoutes registers authentication and user management routes
func (h *UserHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics, loginLimiter func(http.HandlerFunc) http.HandlerFunc) {
	// Public routes
	router.HandleFunc("/auth/register", metrics.Instrument("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", metrics.Instrument("/auth/login", loginLimiter(h.Login))).Methods("POST")
	router.HandleFunc("/auth/refresh", metrics.Instrument("/auth/refresh", h.Refresh)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/auth/logout", metrics.Instrument("/auth/logout", authn.Authenticate(h.Logout))).Methods("POST")
	router.HandleFunc("/users/me", metrics.Instrument("/users/me", authn.Authenticate(h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", metrics.Instrument("/users/me", authn.Authenticate(h.UpdateProfile))).Methods("PUT")

	// Management routes
	merchantOnly := authn.RequireRoles(domain.RoleMerchant)
	router.HandleFunc("/users", metrics.Instrument("/users", merchantOnly(h.ListUsers))).Methods("GET")
	router.HandleFunc("/users/admins", metrics.Instrument("/users/admins", merchantOnly(h.CreateAdmin))).Methods("POST")
	router.HandleFunc("/users/clerks", metrics.Instrument("/users/clerks", authn.RequireRoles(domain.RoleAdmin)(h.CreateClerk))).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}", metrics.Instrument("/users/{id}", authn.Authenticate(h.GetUser))).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}", metrics.Instrument("/users/{id}", authn.Authenticate(h.UpdateUser))).Methods("PUT")
	router.HandleFunc("/users/{id:[0-9]+}", metrics.Instrument("/users/{id}", authn.Authenticate(h.DeleteUser))).Methods("DELETE")
	router.HandleFunc("/users/{id:[0-9]+}/active", metrics.Instrument("/users/{id}/active", merchantOnly(h.ToggleActive))).Methods("PUT")
	router.HandleFunc("/users/{id:[0-9]+}/store", metrics.Instrument("/users/{id}/store", merchantOnly(h.AssignStore))).Methods("PUT")
}
