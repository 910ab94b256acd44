package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Metrics returns per-site on-duty ratios and report counts plus an "all" bucket
	Metrics(ctx context.Context, agencyID string) (*DashboardMetricsResponse, error)
}
