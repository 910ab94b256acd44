package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

type hourlyReportRecord struct {
	ID         string `json:"id,omitempty"`
	AgencyID   string `json:"agencyId"`
	SiteID     string `json:"siteId"`
	UserID     string `json:"userId"`
	Notes      string `json:"notes"`
	ReportedAt string `json:"reportedAt"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

func hourlyReportFromDocument(doc docstore.Document) (report.HourlyReport, error) {
	var rec hourlyReportRecord
	if err := docstore.Decode(doc, &rec); err != nil {
		return report.HourlyReport{}, fmt.Errorf("failed to decode hourly report: %w", err)
	}
	reportedAt, err := parseTime("reportedAt", rec.ReportedAt)
	if err != nil {
		return report.HourlyReport{}, err
	}
	createdAt, err := parseTime("createdAt", rec.CreatedAt)
	if err != nil {
		return report.HourlyReport{}, err
	}
	return report.HourlyReport{
		ID:         rec.ID,
		AgencyID:   rec.AgencyID,
		SiteID:     rec.SiteID,
		UserID:     rec.UserID,
		Notes:      rec.Notes,
		ReportedAt: reportedAt,
		CreatedAt:  createdAt,
	}, nil
}

type hourlyReportRepository struct {
	store docstore.Store
}

// Create implements report.HourlyReportRepository.
func (r *hourlyReportRepository) Create(ctx context.Context, h report.HourlyReport) (report.HourlyReport, error) {
	doc, err := docstore.Encode(hourlyReportRecord{
		ID:         h.ID,
		AgencyID:   h.AgencyID,
		SiteID:     h.SiteID,
		UserID:     h.UserID,
		Notes:      h.Notes,
		ReportedAt: timeutil.FormatUTC(h.ReportedAt),
	})
	if err != nil {
		return report.HourlyReport{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionHourlyReports, doc)
	if err != nil {
		return report.HourlyReport{}, fmt.Errorf("failed to create hourly report: %w", err)
	}
	return hourlyReportFromDocument(saved)
}

// ListByAgency implements report.HourlyReportRepository.
func (r *hourlyReportRepository) ListByAgency(ctx context.Context, agencyID string) ([]report.HourlyReport, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionHourlyReports, "agencyId", agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hourly reports: %w", err)
	}
	return decodeAll(docs, hourlyReportFromDocument)
}

func NewHourlyReportRepository(store docstore.Store) report.HourlyReportRepository {
	return &hourlyReportRepository{store: store}
}
