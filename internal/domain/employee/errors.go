package employee

import "github.com/securefront/workforce-backend-go/internal/pkg/apperror"

var ErrEmployeeNotFound = apperror.New(apperror.ErrNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
