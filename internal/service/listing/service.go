package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/cmlabs-hris/hris-console/internal/pkg/export"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient"
	"golang.org/x/sync/errgroup"
)

// Records is the part of the record store the listing page needs.
type Records interface {
	ListDepartments(ctx context.Context) ([]department.Department, error)
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	ListAttendanceLogs(ctx context.Context, filter attendance.LogFilter) ([]attendance.LogEntry, error)
	Delete(ctx context.Context, res recordclient.Resource, id uint) (string, error)
}

var deleteCatalog = notify.Catalog{
	Success:       "Successfully deleted data",
	SuccessServer: notify.ServerReplace,
	Failure:       "Failed to delete item",
	FailureServer: notify.ServerReplace,
}

type ListControllerImpl struct {
	records  Records
	notifier notify.Notifier

	mu          sync.Mutex
	active      listing.Collection
	filters     listing.Filters
	departments []department.Department
	employees   []employee.Employee
	logs        []attendance.LogEntry
}

func NewListController(records Records, notifier notify.Notifier) listing.Controller {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &ListControllerImpl{
		records:  records,
		notifier: notifier,
		active:   listing.CollectionDepartments,
	}
}

func (l *ListControllerImpl) Mount(ctx context.Context) error {
	return l.Refresh(ctx, listing.AllCollections()...)
}

func (l *ListControllerImpl) SetActiveCollection(c listing.Collection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = c
}

func (l *ListControllerImpl) SetFilter(key listing.FilterKey, value string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, changed, err := l.filters.With(key, value)
	if err != nil {
		return false, err
	}
	l.filters = next
	return changed, nil
}

func (l *ListControllerImpl) ApplyFilter(ctx context.Context, key listing.FilterKey, value string) error {
	changed, err := l.SetFilter(key, value)
	if err != nil || !changed {
		return err
	}
	return l.Refresh(ctx, listing.AllCollections()...)
}

func (l *ListControllerImpl) Refresh(ctx context.Context, collections ...listing.Collection) error {
	l.mu.Lock()
	filters := l.filters
	l.mu.Unlock()

	var (
		g      errgroup.Group
		errsMu sync.Mutex
		errs   []error
	)
	seen := make(map[listing.Collection]bool, len(collections))
	for _, c := range collections {
		if seen[c] {
			continue
		}
		seen[c] = true
		c := c
		g.Go(func() error {
			if err := l.fetch(ctx, c, filters); err != nil {
				errsMu.Lock()
				errs = append(errs, err)
				errsMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// fetch loads one collection. On failure it notifies and keeps the collection's previous data.
func (l *ListControllerImpl) fetch(ctx context.Context, c listing.Collection, filters listing.Filters) error {
	var err error
	switch c {
	case listing.CollectionDepartments:
		var departments []department.Department
		if departments, err = l.records.ListDepartments(ctx); err == nil {
			l.mu.Lock()
			l.departments = departments
			l.mu.Unlock()
		}
	case listing.CollectionEmployees:
		var employees []employee.Employee
		if employees, err = l.records.ListEmployees(ctx); err == nil {
			l.mu.Lock()
			l.employees = employees
			l.mu.Unlock()
		}
	case listing.CollectionAttendanceLogs:
		var logs []attendance.LogEntry
		if logs, err = l.records.ListAttendanceLogs(ctx, filters.LogFilter()); err == nil {
			l.mu.Lock()
			// A response for filters that have since changed is stale.
			if l.filters == filters {
				l.logs = logs
			}
			l.mu.Unlock()
		}
	default:
		return fmt.Errorf("%w: %q", listing.ErrUnknownCollection, c)
	}
	if err == nil {
		return nil
	}

	failed := notify.Catalog{Failure: "Failed to fetch " + c.Label()}.Fail(err)
	l.notifier.Notify(ctx, notify.Failure(failed.Message))
	return failed
}

func resourceOf(c listing.Collection) (recordclient.Resource, error) {
	switch c {
	case listing.CollectionDepartments:
		return recordclient.ResourceDepartments, nil
	case listing.CollectionEmployees:
		return recordclient.ResourceEmployees, nil
	case listing.CollectionAttendanceLogs:
		return "", fmt.Errorf("%w: %s", listing.ErrNotDeletable, c)
	default:
		return "", fmt.Errorf("%w: %q", listing.ErrUnknownCollection, c)
	}
}

func (l *ListControllerImpl) DeleteRow(ctx context.Context, c listing.Collection, id uint) error {
	res, err := resourceOf(c)
	if err != nil {
		return err
	}

	message, err := l.records.Delete(ctx, res, id)
	if err != nil {
		failed := deleteCatalog.Fail(err)
		l.notifier.Notify(ctx, notify.Failure(failed.Message))
		return failed
	}
	l.notifier.Notify(ctx, notify.Success(deleteCatalog.SuccessMessage(message)))

	// Refresh failures are already notified per collection; the delete itself succeeded.
	_ = l.OnRowDeleted(ctx, c)
	return nil
}

func (l *ListControllerImpl) OnRowDeleted(ctx context.Context, c listing.Collection) error {
	collections, err := listing.Cascade(c)
	if err != nil {
		return err
	}
	return l.Refresh(ctx, collections...)
}

func (l *ListControllerImpl) View() listing.View {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := listing.View{
		Collection:        l.active,
		Filters:           l.filters,
		Headers:           listing.Headers(l.active),
		DepartmentOptions: listing.DepartmentOptions(l.departments),
	}
	switch l.active {
	case listing.CollectionDepartments:
		view.Rows = listing.DepartmentRows(l.departments)
	case listing.CollectionEmployees:
		view.Rows = listing.EmployeeRows(l.employees, l.departments)
	case listing.CollectionAttendanceLogs:
		view.Rows = listing.LogRows(l.logs)
	}
	return view
}

func (l *ListControllerImpl) ExportLogs(w io.Writer) error {
	l.mu.Lock()
	logs := append([]attendance.LogEntry(nil), l.logs...)
	l.mu.Unlock()

	return export.WriteLogs(w, logs)
}
