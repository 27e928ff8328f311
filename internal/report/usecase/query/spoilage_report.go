package query

import (
	"github.com/myduka/myduka-backend/internal/report/domain"
)

// SpoilageReportQuery represents the spoilt stock report
type SpoilageReportQuery struct {
	ReportParams
}

// SpoilageReportHandler handles spoilage reporting
type SpoilageReportHandler struct {
	reports domain.ReportRepository
}

// NewSpoilageReportHandler creates a new spoilage report handler
func NewSpoilageReportHandler(reports domain.ReportRepository) *SpoilageReportHandler {
	return &SpoilageReportHandler{reports: reports}
}

// Handle sums spoilt items and the loss at buying price over the window
func (h *SpoilageReportHandler) Handle(q SpoilageReportQuery) ([]domain.SpoilageRow, error) {
	filter, err := resolveFilter(q.ReportParams)
	if err != nil {
		return nil, err
	}
	return h.reports.Spoilage(filter)
}
