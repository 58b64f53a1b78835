package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// Original is the record an edit form was opened for.
type Original interface {
	RecordID() uint
}

// TruncateTime renders a time of day as "HH:MM", dropping seconds. Invalid or missing input yields "".
func TruncateTime(s string) string {
	t, ok := validator.IsValidTimeOfDay(strings.TrimSpace(s))
	if !ok {
		return ""
	}
	return t.Format("15:04")
}

func DepartmentFromWire(d department.Department) *DepartmentForm {
	return &DepartmentForm{
		Name:        d.DepartmentName,
		MaxClockIn:  TruncateTime(d.MaxClockInTime),
		MaxClockOut: TruncateTime(d.MaxClockOutTime),
	}
}

func EmployeeFromWire(e employee.Employee) *EmployeeForm {
	f := &EmployeeForm{
		Name:         e.Name,
		Address:      e.Address,
		EmployeeCode: e.EmployeeCode,
	}
	if e.DepartmentID != 0 {
		f.DepartmentID = strconv.FormatUint(uint64(e.DepartmentID), 10)
	}
	return f
}

// FromWire projects original into the fields of a kind form.
func FromWire(kind Kind, original Original) (State, error) {
	switch o := original.(type) {
	case department.Department:
		if kind != KindDepartment {
			break
		}
		return DepartmentFromWire(o), nil
	case employee.Employee:
		if kind != KindEmployee {
			break
		}
		return EmployeeFromWire(o), nil
	}
	return nil, fmt.Errorf("%w: %T for %s", ErrOriginalMismatch, original, kind)
}

// DepartmentPayload builds the department upsert body. An empty threshold takes the original's value;
// with no original, or an original missing that value too, it fails validation.
func DepartmentPayload(f DepartmentForm, original *department.Department) (department.UpsertRequest, error) {
	maxIn, err := threshold(f.MaxClockIn, original, func(d department.Department) string { return d.MaxClockInTime },
		"max_clock_in_time", "Max Clock In")
	if err != nil {
		return department.UpsertRequest{}, err
	}
	maxOut, err := threshold(f.MaxClockOut, original, func(d department.Department) string { return d.MaxClockOutTime },
		"max_clock_out_time", "Max Clock Out")
	if err != nil {
		return department.UpsertRequest{}, err
	}

	req := department.UpsertRequest{
		DepartmentName:     f.Name,
		MaxClockInTimeStr:  maxIn,
		MaxClockOutTimeStr: maxOut,
	}
	if err := req.Validate(); err != nil {
		return department.UpsertRequest{}, err
	}
	return req, nil
}

func threshold(value string, original *department.Department, pick func(department.Department) string, field, label string) (string, error) {
	if !validator.IsEmpty(value) {
		if t := TruncateTime(value); t != "" {
			return t, nil
		}
		return value, nil
	}
	if original == nil {
		return "", validator.Required(field, label)
	}
	fallback := TruncateTime(pick(*original))
	if fallback == "" {
		return "", validator.Required(field, label)
	}
	return fallback, nil
}

// EmployeePayload builds the employee upsert body. No field falls back to the original.
func EmployeePayload(f EmployeeForm) (employee.UpsertRequest, error) {
	departmentID, err := strconv.ParseUint(strings.TrimSpace(f.DepartmentID), 10, 0)
	if err != nil || departmentID == 0 {
		return employee.UpsertRequest{}, validator.Invalid("department_id", "Department")
	}

	req := employee.UpsertRequest{
		DepartmentID: uint(departmentID),
		Name:         f.Name,
		Address:      f.Address,
		EmployeeCode: f.EmployeeCode,
	}
	if err := req.Validate(); err != nil {
		return employee.UpsertRequest{}, err
	}
	return req, nil
}
