package kafka

import (
	"context"

	"github.com/myduka/myduka-backend/pkg/logger"
)

// DefaultLowStockThreshold is the stock level below which an alert fires
const DefaultLowStockThreshold = 10

// NewLowStockAlertHandler returns an event handler that flags products whose
// remaining stock after a sale falls below threshold
func NewLowStockAlertHandler(threshold int) EventHandler {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return func(ctx context.Context, event SaleRecordedEvent) error {
		if event.RemainingStock >= threshold {
			return nil
		}
		logger.Warn(ctx).
			Uint("product_id", event.ProductID).
			Uint("store_id", event.StoreID).
			Int("remaining_stock", event.RemainingStock).
			Int("threshold", threshold).
			Msg("Low stock after sale")
		return nil
	}
}
