package attendance

import "time"

// Record is one attendance: open while ClockOut is nil, closed once it is set.
type Record struct {
	ID             uint       `json:"id"`
	EmployeeCode   string     `json:"employee_id"`
	AttendanceCode string     `json:"attendance_id"`
	ClockIn        time.Time  `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out"`
}

func (r Record) IsOpen() bool {
	return r.ClockOut == nil
}

// Type marks what a log entry records.
type Type int

const (
	TypeIn  Type = 1
	TypeOut Type = 2
)

// Label renders the marker the way the log table shows it.
func (t Type) Label() string {
	switch t {
	case TypeIn:
		return "In"
	case TypeOut:
		return "Out"
	default:
		return "-"
	}
}

// LogEntry is the read-only, pre-joined reporting row served by the logs endpoint.
type LogEntry struct {
	ID             uint   `json:"id"`
	EmployeeCode   string `json:"employee_id"`
	AttendanceCode string `json:"attendance_id"`
	Name           string `json:"name"`
	DateAttendance string `json:"date_attendance"`
	AttendanceType Type   `json:"attendance_type"`
	Description    string `json:"description"`
	Department     string `json:"department"`
	ClockIn        string `json:"clock_in"`
	ClockOut       string `json:"clock_out"`
}
