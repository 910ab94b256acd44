package report

import "context"

// HourlyReportRepository stores hourly site reports.
type HourlyReportRepository interface {
	Create(ctx context.Context, report HourlyReport) (HourlyReport, error)
	ListByAgency(ctx context.Context, agencyID string) ([]HourlyReport, error)
}
