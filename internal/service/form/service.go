package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/domain/form"
	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// Records is the part of the record store the form needs.
type Records interface {
	ListDepartments(ctx context.Context) ([]department.Department, error)
	GetDepartment(ctx context.Context, id uint) (department.Department, error)
	GetEmployee(ctx context.Context, id uint) (employee.Employee, error)
	CreateDepartment(ctx context.Context, req department.UpsertRequest) (string, error)
	UpdateDepartment(ctx context.Context, id uint, req department.UpsertRequest) (string, error)
	CreateEmployee(ctx context.Context, req employee.UpsertRequest) (string, error)
	UpdateEmployee(ctx context.Context, id uint, req employee.UpsertRequest) (string, error)
}

var departmentOptionsCatalog = notify.Catalog{Failure: "Error fetching departments"}

type FormControllerImpl struct {
	records  Records
	notifier notify.Notifier

	mu            sync.Mutex
	state         form.State
	original      form.Original
	departments   []department.Department
	optionsLoaded bool
}

func NewFormController(records Records, notifier notify.Notifier) form.Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &FormControllerImpl{
		records:  records,
		notifier: notifier,
	}
}

func (c *FormControllerImpl) Initialize(ctx context.Context, kind form.Kind, original form.Original) error {
	var (
		state form.State
		err   error
	)
	if original != nil {
		state, err = form.FromWire(kind, original)
	} else {
		state, err = form.New(kind)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = state
	c.original = original
	c.departments = nil
	c.optionsLoaded = false
	c.mu.Unlock()

	if kind == form.KindEmployee {
		c.loadDepartmentOptions(ctx, state)
	}
	return nil
}

// loadDepartmentOptions fills the department select. Failure is notified and does not close the form.
func (c *FormControllerImpl) loadDepartmentOptions(ctx context.Context, state form.State) {
	departments, err := c.records.ListDepartments(ctx)
	if err != nil {
		c.notifier.Notify(ctx, notify.Failure(departmentOptionsCatalog.FailureMessage(err)))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != state {
		return
	}
	c.departments = departments
	c.optionsLoaded = true
}

func (c *FormControllerImpl) Open(ctx context.Context, kind form.Kind, id uint) error {
	var (
		original form.Original
		err      error
	)
	switch kind {
	case form.KindDepartment:
		var d department.Department
		d, err = c.records.GetDepartment(ctx, id)
		original = d
	case form.KindEmployee:
		var e employee.Employee
		e, err = c.records.GetEmployee(ctx, id)
		original = e
	default:
		return fmt.Errorf("%w: %q", form.ErrUnknownKind, kind)
	}
	if err != nil {
		failed := notify.Catalog{Failure: "Failed to fetch " + kind.Noun(), FailureServer: notify.ServerAppend}.Fail(err)
		c.notifier.Notify(ctx, notify.Failure(failed.Message))
		return failed
	}
	return c.Initialize(ctx, kind, original)
}

func (c *FormControllerImpl) UpdateField(field form.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return form.ErrNotOpen
	}
	return c.state.Set(field, value)
}

func catalogFor(kind form.Kind, edit bool) notify.Catalog {
	verb, past := "create", "created"
	if edit {
		verb, past = "update", "updated"
	}
	noun := kind.Noun()
	return notify.Catalog{
		Success:       strings.ToUpper(noun[:1]) + noun[1:] + " " + past + " successfully",
		Failure:       "Failed to " + verb + " " + noun,
		FailureServer: notify.ServerAppend,
	}
}

func (c *FormControllerImpl) Submit(ctx context.Context) (form.SubmitResult, error) {
	c.mu.Lock()
	state := c.state
	original := c.original
	departments := c.departments
	optionsLoaded := c.optionsLoaded
	var snapshot form.State
	switch s := state.(type) {
	case *form.DepartmentForm:
		copied := *s
		snapshot = &copied
	case *form.EmployeeForm:
		copied := *s
		snapshot = &copied
	}
	c.mu.Unlock()

	if state == nil {
		return form.SubmitResult{}, form.ErrNotOpen
	}

	edit := original != nil
	catalog := catalogFor(state.Kind(), edit)

	var err error
	switch s := snapshot.(type) {
	case *form.DepartmentForm:
		err = c.submitDepartment(ctx, s, original)
	case *form.EmployeeForm:
		err = c.submitEmployee(ctx, s, original, departments, optionsLoaded)
	}
	if err != nil {
		failed := catalog.Fail(err)
		c.notifier.Notify(ctx, notify.Failure(failed.Message))
		return form.SubmitResult{}, failed
	}

	message := catalog.SuccessMessage("")
	c.notifier.Notify(ctx, notify.Success(message))

	if edit {
		return form.SubmitResult{Outcome: form.OutcomeNavigateToList, Message: message}, nil
	}

	c.mu.Lock()
	if c.state == state {
		c.state, _ = form.New(state.Kind())
	}
	c.mu.Unlock()
	return form.SubmitResult{Outcome: form.OutcomeRefreshList, Message: message}, nil
}

func (c *FormControllerImpl) submitDepartment(ctx context.Context, fields *form.DepartmentForm, original form.Original) error {
	var orig *department.Department
	if original != nil {
		d, ok := original.(department.Department)
		if !ok {
			return form.ErrOriginalMismatch
		}
		orig = &d
	}

	if err := fields.Validate(orig); err != nil {
		return err
	}
	req, err := form.DepartmentPayload(*fields, orig)
	if err != nil {
		return err
	}

	if orig != nil {
		_, err = c.records.UpdateDepartment(ctx, orig.RecordID(), req)
	} else {
		_, err = c.records.CreateDepartment(ctx, req)
	}
	return err
}

func (c *FormControllerImpl) submitEmployee(ctx context.Context, fields *form.EmployeeForm, original form.Original,
	departments []department.Department, optionsLoaded bool) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	req, err := form.EmployeePayload(*fields)
	if err != nil {
		return err
	}
	if optionsLoaded && !hasDepartment(departments, req.DepartmentID) {
		return validator.Invalid("department_id", "Department")
	}

	if original != nil {
		_, err = c.records.UpdateEmployee(ctx, original.RecordID(), req)
	} else {
		_, err = c.records.CreateEmployee(ctx, req)
	}
	return err
}

func hasDepartment(departments []department.Department, id uint) bool {
	for _, d := range departments {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (c *FormControllerImpl) Snapshot() form.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return form.Snapshot{}
	}
	snap := form.Snapshot{
		Open:     true,
		Kind:     c.state.Kind(),
		EditMode: c.original != nil,
		Fields:   c.state.Values(),
	}
	if c.original != nil {
		snap.RecordID = c.original.RecordID()
		snap.Title = "Editing: " + displayName(c.original)
	}
	if c.optionsLoaded {
		snap.DepartmentOptions = listing.DepartmentOptions(c.departments)
	}
	return snap
}

func displayName(original form.Original) string {
	switch o := original.(type) {
	case department.Department:
		return o.DepartmentName
	case employee.Employee:
		return o.Name
	default:
		return strconv.FormatUint(uint64(original.RecordID()), 10)
	}
}

func (c *FormControllerImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = nil
	c.original = nil
	c.departments = nil
	c.optionsLoaded = false
}
