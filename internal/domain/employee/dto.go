package employee

import "github.com/cmlabs-hris/hris-console/internal/pkg/validator"

// UpsertRequest is the create/update body. The JSON keys follow the record store's binding.
type UpsertRequest struct {
	DepartmentID uint   `json:"DepartmentID" form:"department_id" validate:"required,gt=0"`
	Name         string `json:"Name" form:"name" validate:"required"`
	Address      string `json:"Address" form:"address" validate:"required"`
	EmployeeCode string `json:"EmployeeID" form:"employee_id"`
}

func (r UpsertRequest) Validate() error {
	return validator.Struct(r)
}
