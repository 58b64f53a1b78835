package form

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// Kind selects which entity a form edits.
type Kind string

const (
	KindDepartment Kind = "departments"
	KindEmployee   Kind = "employees"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDepartment, KindEmployee:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Title is the capitalised kind ("Departments").
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Noun is the singular used in notifications ("department").
func (k Kind) Noun() string {
	return strings.TrimSuffix(string(k), "s")
}

type Field string

const (
	FieldDepartmentName Field = "departmentName"
	FieldMaxClockIn     Field = "maxClockIn"
	FieldMaxClockOut    Field = "maxClockOut"
	FieldDepartmentID   Field = "departmentId"
	FieldName           Field = "name"
	FieldAddress        Field = "address"
	FieldEmployeeCode   Field = "employeeCode"
)

// State is the EditFormState: either a *DepartmentForm or an *EmployeeForm, never both.
type State interface {
	Kind() Kind
	Set(field Field, value string) error
	Values() map[Field]string
	isState()
}

// New returns empty fields for kind.
func New(kind Kind) (State, error) {
	switch kind {
	case KindDepartment:
		return &DepartmentForm{}, nil
	case KindEmployee:
		return &EmployeeForm{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

type DepartmentForm struct {
	Name        string
	MaxClockIn  string
	MaxClockOut string
}

func (*DepartmentForm) Kind() Kind { return KindDepartment }
func (*DepartmentForm) isState()   {}

func (f *DepartmentForm) Set(field Field, value string) error {
	switch field {
	case FieldDepartmentName:
		f.Name = value
	case FieldMaxClockIn:
		f.MaxClockIn = value
	case FieldMaxClockOut:
		f.MaxClockOut = value
	default:
		return fmt.Errorf("%w: %s for %s", ErrUnknownField, field, KindDepartment)
	}
	return nil
}

func (f *DepartmentForm) Values() map[Field]string {
	return map[Field]string{
		FieldDepartmentName: f.Name,
		FieldMaxClockIn:     f.MaxClockIn,
		FieldMaxClockOut:    f.MaxClockOut,
	}
}

// Validate checks required fields in the order name, max clock in, max clock out.
// In edit mode an empty threshold is allowed; the payload falls back to the original's value.
func (f *DepartmentForm) Validate(original *department.Department) error {
	if validator.IsEmpty(f.Name) {
		return validator.Required("department_name", "Department Name")
	}
	if original == nil && validator.IsEmpty(f.MaxClockIn) {
		return validator.Required("max_clock_in_time", "Max Clock In")
	}
	if original == nil && validator.IsEmpty(f.MaxClockOut) {
		return validator.Required("max_clock_out_time", "Max Clock Out")
	}
	return nil
}

type EmployeeForm struct {
	DepartmentID string
	Name         string
	Address      string
	EmployeeCode string
}

func (*EmployeeForm) Kind() Kind { return KindEmployee }
func (*EmployeeForm) isState()   {}

func (f *EmployeeForm) Set(field Field, value string) error {
	switch field {
	case FieldDepartmentID:
		f.DepartmentID = value
	case FieldName:
		f.Name = value
	case FieldAddress:
		f.Address = value
	case FieldEmployeeCode:
		f.EmployeeCode = value
	default:
		return fmt.Errorf("%w: %s for %s", ErrUnknownField, field, KindEmployee)
	}
	return nil
}

func (f *EmployeeForm) Values() map[Field]string {
	return map[Field]string{
		FieldDepartmentID: f.DepartmentID,
		FieldName:         f.Name,
		FieldAddress:      f.Address,
		FieldEmployeeCode: f.EmployeeCode,
	}
}

// Validate checks required fields in the order department, name, address.
func (f *EmployeeForm) Validate() error {
	if validator.IsEmpty(f.DepartmentID) {
		return validator.Required("department_id", "Department")
	}
	if validator.IsEmpty(f.Name) {
		return validator.Required("name", "Name")
	}
	if validator.IsEmpty(f.Address) {
		return validator.Required("address", "Address")
	}
	return nil
}
