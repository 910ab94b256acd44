package site

import "github.com/securefront/workforce-backend-go/internal/pkg/apperror"

var (
	ErrSiteNotFound = apperror.New(apperror.ErrNotFound, "SITE_NOT_FOUND", "site not found")
	ErrForbidden    = apperror.New(apperror.ErrAuthorization, "SITE_FORBIDDEN", "site belongs to another agency")
)

var ErrGeofenceNotConfigured = apperror.New(apperror.ErrGeofence, "GEOFENCE_NOT_CONFIGURED", "site has no usable geofence")
