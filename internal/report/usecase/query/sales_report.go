package query

import (
	"github.com/myduka/myduka-backend/internal/report/domain"
)

// SalesReportQuery represents the sales aggregation report
type SalesReportQuery struct {
	ReportParams
	Period string
}

// SalesReportHandler handles sales reporting
type SalesReportHandler struct {
	reports domain.ReportRepository
}

// NewSalesReportHandler creates a new sales report handler
func NewSalesReportHandler(reports domain.ReportRepository) *SalesReportHandler {
	return &SalesReportHandler{reports: reports}
}

// Handle aggregates units sold and revenue per period bucket
func (h *SalesReportHandler) Handle(q SalesReportQuery) ([]domain.SalesRow, error) {
	period := q.Period
	if period == "" {
		period = domain.PeriodMonthly
	}
	if !domain.ValidPeriod(period) {
		return nil, domain.ErrBadPeriod
	}
	filter, err := resolveFilter(q.ReportParams)
	if err != nil {
		return nil, err
	}
	return h.reports.Sales(period, filter)
}
