package query

import (
	"github.com/myduka/myduka-backend/internal/report/domain"
)

// StockReportQuery represents the current stock level report
type StockReportQuery struct {
	ReportParams
}

// StockReportHandler handles stock reporting
type StockReportHandler struct {
	reports domain.ReportRepository
}

// NewStockReportHandler creates a new stock report handler
func NewStockReportHandler(reports domain.ReportRepository) *StockReportHandler {
	return &StockReportHandler{reports: reports}
}

// Handle returns the latest stock level per product per store
func (h *StockReportHandler) Handle(q StockReportQuery) ([]domain.StockRow, error) {
	filter, err := resolveFilter(q.ReportParams)
	if err != nil {
		return nil, err
	}
	return h.reports.Stock(filter)
}
