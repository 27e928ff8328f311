package domain

import (
	"errors"
	"time"
)

// Reporting periods for sales aggregation
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
)

var ErrBadPeriod = errors.New("invalid report period")

// ValidPeriod reports whether period is a known aggregation window
func ValidPeriod(period string) bool {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAnnual:
		return true
	}
	return false
}

// Filter narrows a report to a store and a date range. A nil StoreID means
// all stores. PaymentStatus narrows the payments report only.
type Filter struct {
	StoreID       *uint
	From          time.Time
	To            time.Time
	PaymentStatus string
}

// SalesRow is one aggregation bucket of the sales report
type SalesRow struct {
	Period    time.Time `json:"period"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   float64   `json:"revenue"`
}

// StockRow is the current stock level of a product in a store, taken from
// the latest inventory record for the pair
type StockRow struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	StoreID      uint   `json:"store_id"`
	ItemsInStock int    `json:"items_in_stock"`
	ItemsSpoilt  int    `json:"items_spoilt"`
}

// SpoilageRow sums spoilt items and their value at buying price
type SpoilageRow struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	StoreID     uint    `json:"store_id"`
	TotalSpoilt int64   `json:"total_spoilt"`
	LossValue   float64 `json:"loss_value"`
}

// PaymentsRow groups received stock by product, store and payment status,
// valued at buying price
type PaymentsRow struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	StoreID       uint    `json:"store_id"`
	PaymentStatus string  `json:"payment_status"`
	UnitsReceived int64   `json:"units_received"`
	TotalValue    float64 `json:"total_value"`
}

// ReportRepository defines the contract for report aggregation queries
type ReportRepository interface {
	Sales(period string, filter Filter) ([]SalesRow, error)
	Stock(filter Filter) ([]StockRow, error)
	Spoilage(filter Filter) ([]SpoilageRow, error)
	Payments(filter Filter) ([]PaymentsRow, error)
}
