package attendance

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// Records is the part of the record store the attendance form needs.
type Records interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Record, string, error)
	CheckOut(ctx context.Context, code string, req attendance.CheckOutRequest) (attendance.Record, string, error)
}

const badRequestMessage = "Bad request: Please check your input"

var (
	employeeOptionsCatalog = notify.Catalog{Failure: "Failed to fetch employees"}

	checkInCatalog = notify.Catalog{
		Success:       "Check-in successful",
		SuccessServer: notify.ServerReplace,
		Failure:       "Check-in failed",
		FailureServer: notify.ServerReplace,
		BadRequest:    badRequestMessage,
	}

	checkOutCatalog = notify.Catalog{
		Success:       "Check-out successful",
		SuccessServer: notify.ServerReplace,
		Failure:       "Check-out failed",
		FailureServer: notify.ServerReplace,
		NotFound:      "Attendance ID is invalid",
		BadRequest:    badRequestMessage,
	}
)

type AttendanceControllerImpl struct {
	records  Records
	notifier notify.Notifier
	location *time.Location

	mu            sync.Mutex
	form          attendance.Form
	options       []attendance.EmployeeOption
	optionsLoaded bool
	lastRecord    *attendance.Record
}

// NewAttendanceController creates the check-in / check-out form. Local timestamps are read in loc.
func NewAttendanceController(records Records, notifier notify.Notifier, loc *time.Location) attendance.Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceControllerImpl{
		records:  records,
		notifier: notifier,
		location: loc,
		form:     attendance.NewForm(),
	}
}

func (c *AttendanceControllerImpl) Mount(ctx context.Context) error {
	employees, err := c.records.ListEmployees(ctx)
	if err != nil {
		failed := employeeOptionsCatalog.Fail(err)
		c.notifier.Notify(ctx, notify.Failure(failed.Message))
		return failed
	}

	options := make([]attendance.EmployeeOption, 0, len(employees))
	for _, e := range employees {
		options = append(options, attendance.EmployeeOption{ID: e.ID, Code: e.EmployeeCode, Label: e.Name})
	}

	c.mu.Lock()
	c.options = options
	c.optionsLoaded = true
	c.mu.Unlock()
	return nil
}

func (c *AttendanceControllerImpl) SetMode(mode attendance.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Mode = mode
}

func (c *AttendanceControllerImpl) UpdateField(field attendance.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Set(field, value)
}

func (c *AttendanceControllerImpl) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	f := c.form
	options := c.options
	c.mu.Unlock()

	var (
		catalog notify.Catalog
		record  attendance.Record
		message string
		err     error
	)
	switch f.Mode {
	case attendance.ModeCheckIn:
		catalog = checkInCatalog
		record, message, err = c.checkIn(ctx, f, options)
	case attendance.ModeCheckOut:
		catalog = checkOutCatalog
		record, message, err = c.checkOut(ctx, f)
	default:
		return "", f.Validate()
	}
	if err != nil {
		failed := catalog.Fail(err)
		c.notifier.Notify(ctx, notify.Failure(failed.Message))
		return "", failed
	}

	message = catalog.SuccessMessage(message)
	c.notifier.Notify(ctx, notify.Success(message))

	c.mu.Lock()
	c.form.ClearMode(f.Mode)
	c.lastRecord = nil
	if record.AttendanceCode != "" {
		c.lastRecord = &record
	}
	c.mu.Unlock()
	return message, nil
}

func (c *AttendanceControllerImpl) checkIn(ctx context.Context, f attendance.Form, options []attendance.EmployeeOption) (attendance.Record, string, error) {
	if err := f.Validate(); err != nil {
		return attendance.Record{}, "", err
	}

	code, ok := employeeCode(options, f.EmployeeID)
	if !ok {
		return attendance.Record{}, "", validator.Invalid(string(attendance.FieldEmployee), "Employee")
	}
	clockIn, err := attendance.ToWireTimestamp(strings.TrimSpace(f.ClockIn), c.location)
	if err != nil {
		return attendance.Record{}, "", validator.Invalid(string(attendance.FieldClockIn), "Clock In time")
	}

	req := attendance.CheckInRequest{EmployeeCode: code, ClockIn: clockIn}
	if err := req.Validate(); err != nil {
		return attendance.Record{}, "", err
	}
	return c.records.CheckIn(ctx, req)
}

func (c *AttendanceControllerImpl) checkOut(ctx context.Context, f attendance.Form) (attendance.Record, string, error) {
	if err := f.Validate(); err != nil {
		return attendance.Record{}, "", err
	}

	clockOut, err := attendance.ToWireTimestamp(strings.TrimSpace(f.ClockOut), c.location)
	if err != nil {
		return attendance.Record{}, "", validator.Invalid(string(attendance.FieldClockOut), "Clock Out time")
	}

	req := attendance.CheckOutRequest{ClockOut: clockOut}
	if err := req.Validate(); err != nil {
		return attendance.Record{}, "", err
	}
	return c.records.CheckOut(ctx, strings.TrimSpace(f.AttendanceID), req)
}

// employeeCode resolves a selected employee ID to the code the check-in endpoint expects.
func employeeCode(options []attendance.EmployeeOption, selected string) (string, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(selected), 10, 0)
	if err != nil {
		return "", false
	}
	for _, o := range options {
		if o.ID == uint(id) && o.Code != "" {
			return o.Code, true
		}
	}
	return "", false
}

func (c *AttendanceControllerImpl) Snapshot() attendance.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return attendance.Snapshot{
		Form:            c.form,
		EmployeeOptions: append([]attendance.EmployeeOption(nil), c.options...),
		OptionsLoaded:   c.optionsLoaded,
		LastRecord:      c.lastRecord,
	}
}
