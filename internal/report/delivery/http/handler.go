package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/myduka/myduka-backend/internal/middleware"
	"github.com/myduka/myduka-backend/internal/report/domain"
	"github.com/myduka/myduka-backend/internal/report/usecase/query"
	userdomain "github.com/myduka/myduka-backend/internal/user/domain"
)

const dateLayout = "2006-01-02"

// ReportHandler handles HTTP requests for reports
type ReportHandler struct {
	salesHandler    *query.SalesReportHandler
	stockHandler    *query.StockReportHandler
	spoilageHandler *query.SpoilageReportHandler
	paymentsHandler *query.PaymentsReportHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports domain.ReportRepository) *ReportHandler {
	return &ReportHandler{
		salesHandler:    query.NewSalesReportHandler(reports),
		stockHandler:    query.NewStockReportHandler(reports),
		spoilageHandler: query.NewSpoilageReportHandler(reports),
		paymentsHandler: query.NewPaymentsReportHandler(reports),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Sales handles GET /reports/sales
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	params, err := h.reportParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.salesHandler.Handle(query.SalesReportQuery{
		ReportParams: params,
		Period:       r.URL.Query().Get("granularity"),
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

// Stock handles GET /reports/stock
func (h *ReportHandler) Stock(w http.ResponseWriter, r *http.Request) {
	params, err := h.reportParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.stockHandler.Handle(query.StockReportQuery{ReportParams: params})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

// Spoilage handles GET /reports/spoilage
func (h *ReportHandler) Spoilage(w http.ResponseWriter, r *http.Request) {
	params, err := h.reportParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.spoilageHandler.Handle(query.SpoilageReportQuery{ReportParams: params})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

// Payments handles GET /reports/payments
func (h *ReportHandler) Payments(w http.ResponseWriter, r *http.Request) {
	params, err := h.reportParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.paymentsHandler.Handle(query.PaymentsReportQuery{
		ReportParams: params,
		Status:       r.URL.Query().Get("status"),
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

// reportParams parses the shared store and date range query parameters
func (h *ReportHandler) reportParams(r *http.Request) (query.ReportParams, error) {
	actor, _ := middleware.ActorFromContext(r.Context())
	params := query.ReportParams{Actor: actor}

	if raw := r.URL.Query().Get("store_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return params, errors.New("invalid store_id")
		}
		storeID := uint(id)
		params.StoreID = &storeID
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return params, errors.New("invalid start_date, expected YYYY-MM-DD")
		}
		params.From = from
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return params, errors.New("invalid end_date, expected YYYY-MM-DD")
		}
		// Inclusive end date
		params.To = to.Add(24 * time.Hour)
	}
	return params, nil
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, userdomain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBadPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
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

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, metrics *middleware.Metrics) {
	managers := authn.RequireRoles(userdomain.RoleMerchant, userdomain.RoleAdmin)
	router.HandleFunc("/reports/sales", metrics.Instrument("/reports/sales", managers(h.Sales))).Methods("GET")
	router.HandleFunc("/reports/stock", metrics.Instrument("/reports/stock", managers(h.Stock))).Methods("GET")
	router.HandleFunc("/reports/spoilage", metrics.Instrument("/reports/spoilage", managers(h.Spoilage))).Methods("GET")
	router.HandleFunc("/reports/payments", metrics.Instrument("/reports/payments", managers(h.Payments))).Methods("GET")
}
