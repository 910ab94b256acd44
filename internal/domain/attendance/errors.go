package attendance

import "github.com/securefront/workforce-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Clock-in errors
	ErrMissingLocation       = apperror.New(apperror.ErrValidation, "MISSING_LOCATION", "lat and lng are required to clock in")
	ErrGeofenceNotConfigured = apperror.New(apperror.ErrGeofence, "GEOFENCE_NOT_CONFIGURED", "site has no usable geofence")
	ErrOutsideGeofence       = apperror.New(apperror.ErrGeofence, "OUTSIDE_GEOFENCE", "location is outside the site geofence")
	ErrAlreadyClockedIn      = apperror.New(apperror.ErrConflict, "ALREADY_CLOCKED_IN", "already clocked in today")
	ErrNoScheduledShift      = apperror.New(apperror.ErrValidation, "NO_SCHEDULED_SHIFT", "no scheduled shift within the clock-in window")
	ErrShiftAlreadyRecorded  = apperror.New(apperror.ErrConflict, "SHIFT_ALREADY_RECORDED", "an attendance record already exists for this shift")

	// Break errors
	ErrBreakInProgress = apperror.New(apperror.ErrConflict, "BREAK_IN_PROGRESS", "a break is already in progress")
	ErrNoActiveBreak   = apperror.New(apperror.ErrConflict, "NO_ACTIVE_BREAK", "no break is in progress")
	ErrNotClockedIn    = apperror.New(apperror.ErrConflict, "NOT_CLOCKED_IN", "attendance has no clock-in")

	// Clock-out errors
	ErrAlreadyClockedOut = apperror.New(apperror.ErrConflict, "ALREADY_CLOCKED_OUT", "already clocked out")
	ErrNegativeDuration  = apperror.New(apperror.ErrValidation, "NEGATIVE_DURATION", "clock-out precedes clock-in")

	// General errors
	ErrAttendanceNotFound = apperror.New(apperror.ErrNotFound, "ATTENDANCE_NOT_FOUND", "attendance record not found")
	ErrForbidden          = apperror.New(apperror.ErrAuthorization, "ATTENDANCE_FORBIDDEN", "unauthorized to access this attendance record")
)
