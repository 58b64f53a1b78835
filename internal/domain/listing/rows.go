package listing

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
)

const placeholder = "-"

const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Action is a per-row control. Edit actions carry the page to open; delete actions are addressed by
// the row's collection and ID.
type Action struct {
	Name string `json:"name"`
	Href string `json:"href,omitempty"`
}

type Row struct {
	No      int      `json:"no"`
	ID      uint     `json:"id"`
	Cells   []string `json:"cells"`
	Actions []Action `json:"actions,omitempty"`
}

// Option is one entry of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var logHeaders = []string{
	"No", "Attendance ID", "Employee Name", "Department Name", "Date Attendance",
	"Attendance Type", "Clock In", "Clock Out", "Description",
}

func Headers(c Collection) []string {
	switch c {
	case CollectionDepartments:
		return []string{"No", "Department Name", "Max Check-In Time", "Max Check-Out Time", "Actions"}
	case CollectionEmployees:
		return []string{"No", "Employee ID", "Employee Name", "Address", "Department Name", "Actions"}
	case CollectionAttendanceLogs:
		return append([]string(nil), logHeaders...)
	default:
		return nil
	}
}

func rowActions(c Collection, id uint) []Action {
	return []Action{
		{Name: ActionEdit, Href: fmt.Sprintf("/edit/%d?type=%s", id, c)},
		{Name: ActionDelete},
	}
}

func DepartmentRows(departments []department.Department) []Row {
	rows := make([]Row, 0, len(departments))
	for i, d := range departments {
		rows = append(rows, Row{
			No:      i + 1,
			ID:      d.ID,
			Cells:   []string{orDash(d.DepartmentName), orDash(d.MaxClockInTime), orDash(d.MaxClockOutTime)},
			Actions: rowActions(CollectionDepartments, d.ID),
		})
	}
	return rows
}

// EmployeeRows renders employees, resolving the department name from departments when the record
// does not embed it.
func EmployeeRows(employees []employee.Employee, departments []department.Department) []Row {
	names := make(map[uint]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.DepartmentName
	}

	rows := make([]Row, 0, len(employees))
	for i, e := range employees {
		deptName := e.Department.DepartmentName
		if deptName == "" {
			deptName = names[e.DepartmentID]
		}
		rows = append(rows, Row{
			No:      i + 1,
			ID:      e.ID,
			Cells:   []string{orDash(e.EmployeeCode), orDash(e.Name), orDash(e.Address), orDash(deptName)},
			Actions: rowActions(CollectionEmployees, e.ID),
		})
	}
	return rows
}

// LogRows renders the read-only log table. Log rows have no actions.
func LogRows(entries []attendance.LogEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, Row{
			No:    i + 1,
			ID:    e.ID,
			Cells: LogCells(e),
		})
	}
	return rows
}

// LogCells are the cells of a log row after the "No" column.
func LogCells(e attendance.LogEntry) []string {
	return []string{
		orDash(e.AttendanceCode),
		orDash(e.Name),
		orDash(e.Department),
		orDash(e.DateAttendance),
		e.AttendanceType.Label(),
		orDash(e.ClockIn),
		orDash(e.ClockOut),
		orDash(e.Description),
	}
}

func DepartmentOptions(departments []department.Department) []Option {
	opts := make([]Option, 0, len(departments))
	for _, d := range departments {
		opts = append(opts, Option{Value: strconv.FormatUint(uint64(d.ID), 10), Label: d.DepartmentName})
	}
	return opts
}

func EmployeeOptions(employees []employee.Employee) []Option {
	opts := make([]Option, 0, len(employees))
	for _, e := range employees {
		label := e.Name
		if e.EmployeeCode != "" {
			label = e.EmployeeCode + " - " + e.Name
		}
		opts = append(opts, Option{Value: strconv.FormatUint(uint64(e.ID), 10), Label: label})
	}
	return opts
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
