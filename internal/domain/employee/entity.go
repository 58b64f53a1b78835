package employee

import "github.com/cmlabs-hris/hris-console/internal/domain/department"

// Employee is an employee record as the record store serves it.
//
// ID is the canonical identity. EmployeeCode (EMP-001) is a business attribute assigned by the store;
// it only doubles as a key where the attendance endpoints require it.
type Employee struct {
	ID           uint                  `json:"id"`
	EmployeeCode string                `json:"employee_id"`
	DepartmentID uint                  `json:"department_id"`
	Name         string                `json:"name"`
	Address      string                `json:"address"`
	Department   department.Department `json:"department"`
}

func (e Employee) RecordID() uint {
	return e.ID
}
