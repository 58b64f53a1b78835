package department

// Department is a department record as the record store serves it.
type Department struct {
	ID              uint     `json:"id"`
	DepartmentName  string   `json:"department_name"`
	MaxClockInTime  string   `json:"max_clock_in_time"`
	MaxClockOutTime string   `json:"max_clock_out_time"`
	Employees       []Member `json:"employees,omitempty"`
}

// Member is the employee summary embedded in department responses.
type Member struct {
	ID           uint   `json:"id"`
	EmployeeCode string `json:"employee_id"`
	DepartmentID uint   `json:"department_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
}

// RecordID returns the canonical identity used for get/update/delete.
func (d Department) RecordID() uint {
	return d.ID
}
