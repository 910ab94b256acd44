package report

import "github.com/securefront/workforce-backend-go/internal/pkg/apperror"

var (
	ErrInvalidDateRange   = apperror.New(apperror.ErrValidation, "INVALID_DATE_RANGE", "end date must not be before start date")
	ErrUnsupportedFormat  = apperror.New(apperror.ErrValidation, "UNSUPPORTED_FORMAT", "export format must be csv or xlsx")
	ErrReportTimedOut     = apperror.New(apperror.ErrStorage, "REPORT_TIMEOUT", "report generation timed out")
	ErrHourlyReportDenied = apperror.New(apperror.ErrAuthorization, "HOURLY_REPORT_FORBIDDEN", "site belongs to another agency")
)
