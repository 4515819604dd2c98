package payrollerrors

import (
	"net/http"

	"capbot/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"No payroll record matches the given employee and competency",
		http.StatusNotFound,
	)

	ErrUnknownDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown deduction type, expected inss or irrf",
		http.StatusBadRequest,
	)
)

// DataLoad wraps a load-time failure of the tabular source. Startup aborts
// on this, there is no partial-load state.
func DataLoad(err error) *apperror.AppError {
	return apperror.Wrap(
		err,
		apperror.CodeDataLoad,
		"Failed to load payroll data source",
		http.StatusInternalServerError,
	)
}
