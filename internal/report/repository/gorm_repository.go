package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/myduka/myduka-backend/internal/report/domain"
)

// GormReportRepository implements ReportRepository with SQL aggregations over
// the transactions and inventory_records tables
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM-based report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func truncUnit(period string) (string, error) {
	switch period {
	case domain.PeriodDaily:
		return "day", nil
	case domain.PeriodWeekly:
		return "week", nil
	case domain.PeriodMonthly:
		return "month", nil
	case domain.PeriodAnnual:
		return "year", nil
	}
	return "", domain.ErrBadPeriod
}

// Sales aggregates units sold and revenue per period bucket
func (r *GormReportRepository) Sales(period string, filter domain.Filter) ([]domain.SalesRow, error) {
	unit, err := truncUnit(period)
	if err != nil {
		return nil, err
	}

	query := r.db.Table("transactions").
		Select("date_trunc(?, created_at) AS period, SUM(quantity) AS units_sold, SUM(total_amount) AS revenue", unit).
		Where("deleted_at IS NULL").
		Where("created_at >= ? AND created_at < ?", filter.From, filter.To).
		Group("period").
		Order("period")
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	var rows []domain.SalesRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to run sales report: %w", err)
	}
	return rows, nil
}

// Stock reports the latest stock level per (product, store) pair
func (r *GormReportRepository) Stock(filter domain.Filter) ([]domain.StockRow, error) {
	latest := r.db.Table("inventory_records").
		Select("DISTINCT ON (product_id, store_id) product_id, store_id, items_in_stock, items_spoilt").
		Where("deleted_at IS NULL").
		Order("product_id, store_id, created_at DESC")
	if filter.StoreID != nil {
		latest = latest.Where("store_id = ?", *filter.StoreID)
	}

	var rows []domain.StockRow
	err := r.db.Table("(?) AS i", latest).
		Select("i.product_id, p.name AS product_name, i.store_id, i.items_in_stock, i.items_spoilt").
		Joins("JOIN products p ON p.id = i.product_id").
		Order("i.store_id, p.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run stock report: %w", err)
	}
	return rows, nil
}

// Spoilage sums spoilt items per product and store, valued at buying price
func (r *GormReportRepository) Spoilage(filter domain.Filter) ([]domain.SpoilageRow, error) {
	query := r.db.Table("inventory_records AS i").
		Select("i.product_id, p.name AS product_name, i.store_id, "+
			"SUM(i.items_spoilt) AS total_spoilt, SUM(i.items_spoilt * i.buying_price) AS loss_value").
		Joins("JOIN products p ON p.id = i.product_id").
		Where("i.deleted_at IS NULL").
		Where("i.created_at >= ? AND i.created_at < ?", filter.From, filter.To).
		Group("i.product_id, p.name, i.store_id").
		Having("SUM(i.items_spoilt) > 0").
		Order("loss_value DESC")
	if filter.StoreID != nil {
		query = query.Where("i.store_id = ?", *filter.StoreID)
	}

	var rows []domain.SpoilageRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to run spoilage report: %w", err)
	}
	return rows, nil
}

// Payments groups received stock by product, store and payment status with
// its value at buying price, giving the merchant the supplier liability
func (r *GormReportRepository) Payments(filter domain.Filter) ([]domain.PaymentsRow, error) {
	query := r.db.Table("inventory_records AS i").
		Select("i.product_id, p.name AS product_name, i.store_id, i.payment_status, "+
			"SUM(i.quantity_received) AS units_received, SUM(i.quantity_received * i.buying_price) AS total_value").
		Joins("JOIN products p ON p.id = i.product_id").
		Where("i.deleted_at IS NULL").
		Where("i.created_at >= ? AND i.created_at < ?", filter.From, filter.To).
		Group("i.product_id, p.name, i.store_id, i.payment_status").
		Order("i.store_id, p.name, i.payment_status")
	if filter.StoreID != nil {
		query = query.Where("i.store_id = ?", *filter.StoreID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("i.payment_status = ?", filter.PaymentStatus)
	}

	var rows []domain.PaymentsRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to run payments report: %w", err)
	}
	return rows, nil
}
