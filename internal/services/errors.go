package services

import (
	"errors"
	"fmt"
	"strings"

	"appsalescli/internal/validation"
)

// Report service errors
var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyUpload    = errors.New("uploaded report is empty")
)

// InvalidReportError carries the validation outcome of a rejected upload
// so handlers can show the user every problem at once.
type InvalidReportError struct {
	Result validation.Result
}

// Error implements the error interface
func (e *InvalidReportError) Error() string {
	return fmt.Sprintf("report failed validation: %s", strings.Join(e.Result.Errors, "; "))
}
