package recordclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
)

func (c *Client) ListDepartments(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	_, err := c.do(ctx, request{
		method: http.MethodGet, path: c.routes.Departments.List,
		verb: "fetch", resource: ResourceDepartments,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []department.Department{}
	}
	return out, nil
}

func (c *Client) GetDepartment(ctx context.Context, id uint) (department.Department, error) {
	var out department.Department
	_, err := c.do(ctx, request{
		method: http.MethodGet, path: c.routes.Departments.item(id),
		verb: "fetch", resource: ResourceDepartments,
	}, &out)
	return out, err
}

// CreateDepartment returns the store's confirmation message.
func (c *Client) CreateDepartment(ctx context.Context, req department.UpsertRequest) (string, error) {
	return c.do(ctx, request{
		method: http.MethodPost, path: c.routes.Departments.Create, body: req,
		verb: "create", resource: ResourceDepartments,
	}, nil)
}

// UpdateDepartment sends a partial update.
func (c *Client) UpdateDepartment(ctx context.Context, id uint, req department.UpsertRequest) (string, error) {
	return c.do(ctx, request{
		method: http.MethodPatch, path: c.routes.Departments.item(id), body: req,
		verb: "update", resource: ResourceDepartments,
	}, nil)
}

func (c *Client) DeleteDepartment(ctx context.Context, id uint) (string, error) {
	return c.Delete(ctx, ResourceDepartments, id)
}

func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	_, err := c.do(ctx, request{
		method: http.MethodGet, path: c.routes.Employees.List,
		verb: "fetch", resource: ResourceEmployees,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []employee.Employee{}
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id uint) (employee.Employee, error) {
	var out employee.Employee
	_, err := c.do(ctx, request{
		method: http.MethodGet, path: c.routes.Employees.item(id),
		verb: "fetch", resource: ResourceEmployees,
	}, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.UpsertRequest) (string, error) {
	return c.do(ctx, request{
		method: http.MethodPost, path: c.routes.Employees.Create, body: req,
		verb: "create", resource: ResourceEmployees,
	}, nil)
}

func (c *Client) UpdateEmployee(ctx context.Context, id uint, req employee.UpsertRequest) (string, error) {
	return c.do(ctx, request{
		method: http.MethodPatch, path: c.routes.Employees.item(id), body: req,
		verb: "update", resource: ResourceEmployees,
	}, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id uint) (string, error) {
	return c.Delete(ctx, ResourceEmployees, id)
}

// Delete removes one department or employee and returns the store's message.
func (c *Client) Delete(ctx context.Context, res Resource, id uint) (string, error) {
	routes, ok := c.routes.collection(res)
	if !ok {
		return "", fmt.Errorf("delete: unsupported resource %q", res)
	}
	return c.do(ctx, request{
		method: http.MethodDelete, path: routes.item(id),
		verb: "delete", resource: res,
	}, nil)
}

// CheckIn opens an attendance. The record is zero when the store's reply does not carry one.
func (c *Client) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Record, string, error) {
	var raw json.RawMessage
	msg, err := c.do(ctx, request{
		method: http.MethodPost, path: c.routes.CheckIn, body: req,
		verb: "check in", resource: ResourceAttendance,
	}, &raw)
	if err != nil {
		return attendance.Record{}, "", err
	}
	return decodeRecord(ctx, raw), msg, nil
}

// CheckOut closes the attendance identified by code.
func (c *Client) CheckOut(ctx context.Context, code string, req attendance.CheckOutRequest) (attendance.Record, string, error) {
	var raw json.RawMessage
	msg, err := c.do(ctx, request{
		method: http.MethodPut, path: c.routes.checkOut(code), body: req,
		verb: "check out", resource: ResourceAttendance,
	}, &raw)
	if err != nil {
		return attendance.Record{}, "", err
	}
	return decodeRecord(ctx, raw), msg, nil
}

// decodeRecord reads the attendance echoed by the store. The action already succeeded, so an
// unreadable echo only yields a zero record.
func decodeRecord(ctx context.Context, raw json.RawMessage) attendance.Record {
	var rec attendance.Record
	if len(raw) == 0 {
		return rec
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.DebugContext(ctx, "attendance echo not decoded", "error", err)
		return attendance.Record{}
	}
	return rec
}

func (c *Client) ListAttendanceLogs(ctx context.Context, filter attendance.LogFilter) ([]attendance.LogEntry, error) {
	var out []attendance.LogEntry
	_, err := c.do(ctx, request{
		method: http.MethodGet, path: c.routes.AttendanceLogs, query: filter.Query(),
		verb: "fetch", resource: ResourceAttendanceLogs,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []attendance.LogEntry{}
	}
	return out, nil
}
