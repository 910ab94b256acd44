package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	code := apperror.Code(err)
	switch apperror.Kind(err) {
	case apperror.ErrValidation:
		writeError(w, http.StatusBadRequest, code, err.Error())
	case apperror.ErrNotFound:
		writeError(w, http.StatusNotFound, code, err.Error())
	case apperror.ErrConflict:
		writeError(w, http.StatusConflict, code, err.Error())
	case apperror.ErrAuthorization:
		writeError(w, http.StatusForbidden, code, err.Error())
	case apperror.ErrGeofence:
		writeError(w, http.StatusUnprocessableEntity, code, err.Error())
	case apperror.ErrStorage:
		slog.Error("Storage failure", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, code, "A storage error occurred")
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	writeJSON(w, status, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
