package employeeerrors

import (
	"net/http"

	"capbot/internal/shared/apperror"
)

var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"Employee not found in the payroll dataset",
	http.StatusNotFound,
)
