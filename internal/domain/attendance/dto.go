package attendance

import (
	"net/url"

	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// TimestampLayout is the zoneless, second-precision form the record store accepts.
const TimestampLayout = "2006-01-02 15:04:05"

type CheckInRequest struct {
	EmployeeCode string `json:"employee_id" form:"employee_id" validate:"required"`
	ClockIn      string `json:"clock_in" form:"clock_in" validate:"required,datetime=2006-01-02 15:04:05"`
}

func (r CheckInRequest) Validate() error {
	return validator.Struct(r)
}

type CheckOutRequest struct {
	ClockOut string `json:"clock_out" form:"clock_out" validate:"required,datetime=2006-01-02 15:04:05"`
}

func (r CheckOutRequest) Validate() error {
	return validator.Struct(r)
}

// LogFilter narrows the attendance log listing. Empty fields are not sent.
type LogFilter struct {
	Date         string `json:"date"`
	DepartmentID string `json:"department_id"`
}

func (f LogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.Invalid("date", "Date"))
		}
	}
	if f.DepartmentID != "" && !validator.IsNumeric(f.DepartmentID) {
		errs = append(errs, validator.Invalid("department_id", "Department"))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Query encodes the filter as date=...&department_id=..., omitting empty values.
func (f LogFilter) Query() url.Values {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.DepartmentID != "" {
		q.Set("department_id", f.DepartmentID)
	}
	return q
}

// SetModeRequest switches the console form between check-in and check-out.
type SetModeRequest struct {
	Mode string `json:"mode"`
}

type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
