package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/order/domain"
)

// OrderStats represents order statistics
type OrderStats struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	ConfirmedOrders int64 `json:"confirmed_orders"`
	DeliveredOrders int64 `json:"delivered_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
}

// GetStatsHandler handles statistics queries
type GetStatsHandler struct {
	repo domain.OrderRepository
}

// NewGetStatsHandler creates a new handler
func NewGetStatsHandler(repo domain.OrderRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the query
func (h *GetStatsHandler) Handle() (*OrderStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	stats := &OrderStats{TotalOrders: total}

	counts := []struct {
		status string
		dest   *int64
	}{
		{domain.StatusPending, &stats.PendingOrders},
		{domain.StatusConfirmed, &stats.ConfirmedOrders},
		{domain.StatusDelivered, &stats.DeliveredOrders},
		{domain.StatusCancelled, &stats.CancelledOrders},
	}
	for _, c := range counts {
		n, err := h.repo.CountByStatus(c.status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", c.status, err)
		}
		*c.dest = n
	}

	return stats, nil
}
