package query

import (
	"fmt"

	inventorydomain "github.com/myduka/myduka-backend/internal/inventory/domain"
	"github.com/myduka/myduka-backend/internal/report/domain"
)

// PaymentsReportQuery represents the supplier payment status report
type PaymentsReportQuery struct {
	ReportParams
	Status string
}

// PaymentsReportHandler handles payment status reporting
type PaymentsReportHandler struct {
	reports domain.ReportRepository
}

// NewPaymentsReportHandler creates a new payments report handler
func NewPaymentsReportHandler(reports domain.ReportRepository) *PaymentsReportHandler {
	return &PaymentsReportHandler{reports: reports}
}

// Handle groups received stock by payment status over the window
func (h *PaymentsReportHandler) Handle(q PaymentsReportQuery) ([]domain.PaymentsRow, error) {
	if q.Status != "" && !inventorydomain.ValidPaymentStatus(q.Status) {
		return nil, fmt.Errorf("invalid payment status: %s", q.Status)
	}
	filter, err := resolveFilter(q.ReportParams)
	if err != nil {
		return nil, err
	}
	filter.PaymentStatus = q.Status
	return h.reports.Payments(filter)
}
