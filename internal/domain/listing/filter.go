package listing

import (
	"fmt"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
)

type FilterKey string

const (
	FilterDate         FilterKey = "date"
	FilterDepartmentID FilterKey = "department_id"
)

// Filters narrow the attendance log table. The zero value means no filtering.
type Filters struct {
	Date         string `json:"date"`
	DepartmentID string `json:"department_id"`
}

// With returns f with key set to value and reports whether anything changed.
// An empty value clears the filter.
func (f Filters) With(key FilterKey, value string) (Filters, bool, error) {
	next := f
	switch key {
	case FilterDate:
		next.Date = value
	case FilterDepartmentID:
		next.DepartmentID = value
	default:
		return f, false, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	if err := next.LogFilter().Validate(); err != nil {
		return f, false, err
	}
	return next, next != f, nil
}

func (f Filters) LogFilter() attendance.LogFilter {
	return attendance.LogFilter{Date: f.Date, DepartmentID: f.DepartmentID}
}
