package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

type Mode string

const (
	ModeCheckIn  Mode = "checkin"
	ModeCheckOut Mode = "checkout"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCheckIn, ModeCheckOut:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

type Field string

const (
	FieldEmployee     Field = "employee"
	FieldClockIn      Field = "clock_in"
	FieldAttendanceID Field = "attendance_id"
	FieldClockOut     Field = "clock_out"
)

// Form holds the inputs of both modes. Only the active mode's fields are edited, validated and
// submitted; switching modes keeps the other mode's inputs.
type Form struct {
	Mode         Mode   `json:"mode"`
	EmployeeID   string `json:"employee"`
	ClockIn      string `json:"clock_in"`
	AttendanceID string `json:"attendance_id"`
	ClockOut     string `json:"clock_out"`
}

func NewForm() Form {
	return Form{Mode: ModeCheckIn}
}

func (f *Form) Set(field Field, value string) error {
	switch {
	case f.Mode == ModeCheckIn && field == FieldEmployee:
		f.EmployeeID = value
	case f.Mode == ModeCheckIn && field == FieldClockIn:
		f.ClockIn = value
	case f.Mode == ModeCheckOut && field == FieldAttendanceID:
		f.AttendanceID = value
	case f.Mode == ModeCheckOut && field == FieldClockOut:
		f.ClockOut = value
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnknownField, field, f.Mode)
	}
	return nil
}

// Validate reports the first missing field of the active mode.
func (f Form) Validate() error {
	switch f.Mode {
	case ModeCheckIn:
		if validator.IsEmpty(f.EmployeeID) {
			return validator.Required(string(FieldEmployee), "Employee")
		}
		if validator.IsEmpty(f.ClockIn) {
			return validator.Required(string(FieldClockIn), "Clock In time")
		}
	case ModeCheckOut:
		if validator.IsEmpty(f.AttendanceID) {
			return validator.Required(string(FieldAttendanceID), "Attendance ID")
		}
		if validator.IsEmpty(f.ClockOut) {
			return validator.Required(string(FieldClockOut), "Clock Out time")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, f.Mode)
	}
	return nil
}

// Clear empties the active mode's fields.
func (f *Form) Clear() {
	f.ClearMode(f.Mode)
}

// ClearMode empties the fields of mode m.
func (f *Form) ClearMode(m Mode) {
	switch m {
	case ModeCheckIn:
		f.EmployeeID = ""
		f.ClockIn = ""
	case ModeCheckOut:
		f.AttendanceID = ""
		f.ClockOut = ""
	}
}
