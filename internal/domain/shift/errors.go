package shift

import "github.com/securefront/workforce-backend-go/internal/pkg/apperror"

var (
	ErrShiftNotFound = apperror.New(apperror.ErrNotFound, "SHIFT_NOT_FOUND", "shift not found")
	ErrShiftConflict = apperror.New(apperror.ErrConflict, "SHIFT_CONFLICT", "shift overlaps an existing shift for this employee")
	ErrShiftNotOpen  = apperror.New(apperror.ErrConflict, "SHIFT_NOT_OPEN", "shift is not open for applications")
	ErrForbidden     = apperror.New(apperror.ErrAuthorization, "SHIFT_FORBIDDEN", "not allowed to modify this shift")
)
