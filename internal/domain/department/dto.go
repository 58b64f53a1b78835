package department

import "github.com/cmlabs-hris/hris-console/internal/pkg/validator"

// UpsertRequest is the create/update body. The JSON keys follow the record store's binding.
type UpsertRequest struct {
	DepartmentName     string `json:"DepartmentName" form:"department_name" validate:"required"`
	MaxClockInTimeStr  string `json:"MaxClockInTimeStr" form:"max_clock_in_time" validate:"required,datetime=15:04"`
	MaxClockOutTimeStr string `json:"MaxClockOutTimeStr" form:"max_clock_out_time" validate:"required,datetime=15:04"`
}

func (r UpsertRequest) Validate() error {
	return validator.Struct(r)
}
