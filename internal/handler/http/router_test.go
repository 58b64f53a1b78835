package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/cmlabs-hris/hris-console/internal/pkg/export"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient/recordtest"
	"github.com/cmlabs-hris/hris-console/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type console struct {
	store    *recordtest.Store
	registry *session.Registry
	router   http.Handler
}

func newConsole(t *testing.T) *console {
	t.Helper()
	store := recordtest.NewStore(t)
	ops := store.SeedDepartment(department.Department{DepartmentName: "Ops", MaxClockInTime: "08:00:00", MaxClockOutTime: "17:00:00"})
	store.SeedDepartment(department.Department{DepartmentName: "Finance", MaxClockInTime: "09:00:00", MaxClockOutTime: "18:00:00"})
	store.SeedEmployee(employee.Employee{DepartmentID: ops.ID, Name: "Rina", Address: "Bandung"})
	store.SeedLog(attendance.LogEntry{AttendanceCode: "ATT-001", Name: "Rina", Department: "Ops",
		DateAttendance: "2024-01-10", AttendanceType: attendance.TypeIn, ClockIn: "08:00:00"}, ops.ID)

	client, err := recordclient.New(store.URL())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := sse.NewHub()
	registry := session.NewRegistry(client, hub, session.Options{
		IdleTimeout: time.Hour,
		Location:    time.UTC,
		Logger:      logger,
	})
	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, Logger: logger},
		registry,
		NewSessionHandler(registry, hub),
		NewListHandler(),
		NewFormHandler(),
		NewAttendanceHandler(),
	)
	return &console{store: store, registry: registry, router: router}
}

func (c *console) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (c *console) newSession(t *testing.T) string {
	t.Helper()
	w, resp := c.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	return "/api/v1/sessions/" + data["session_id"].(string)
}

func errorMessage(resp map[string]interface{}) string {
	detail, _ := resp["error"].(map[string]interface{})
	msg, _ := detail["message"].(string)
	return msg
}

func TestSession_CreateAndEnd(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)
	assert.Equal(t, 1, c.registry.Len())

	w, _ := c.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := c.do(t, http.MethodGet, base+"/list", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", errorMessage(resp))
}

func TestList_MountAndDeleteCascade(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	// Act
	w, resp := c.do(t, http.MethodPost, base+"/list/mount", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "departments", data["collection"])
	assert.Len(t, data["rows"], 2)
	assert.Equal(t, 3, c.store.TotalCalls())

	c.store.ResetCalls()
	w, resp = c.do(t, http.MethodDelete, base+"/list/rows/departments/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, c.store.TotalCalls())
	assert.Len(t, resp["data"].(map[string]interface{})["rows"], 1)
}

func TestList_DeleteLogRowIsRejected(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, _ := c.do(t, http.MethodDelete, base+"/list/rows/attendanceLogs/1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, c.store.TotalCalls())
}

func TestList_Filters(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, resp := c.do(t, http.MethodPut, base+"/list/filters", map[string]string{"key": "date", "value": "10-01-2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Date is invalid", errorMessage(resp))
	assert.Equal(t, 0, c.store.TotalCalls())

	w, _ = c.do(t, http.MethodPut, base+"/list/filters", map[string]string{"key": "department_id", "value": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "department_id=1", c.store.LastQuery(recordtest.ListLogs))

	w, resp = c.do(t, http.MethodPut, base+"/list/collection", map[string]string{"collection": "attendanceLogs"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].(map[string]interface{})["rows"], 1)
}

func TestList_ExportLogs(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)
	c.do(t, http.MethodPost, base+"/list/mount", nil)

	w, _ := c.do(t, http.MethodGet, base+"/list/logs/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestForm_CreateDepartment(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, _ := c.do(t, http.MethodPost, base+"/form", map[string]string{"kind": "departments"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := c.do(t, http.MethodPost, base+"/form/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Contains(t, details, "department_name")
	assert.Equal(t, 0, c.store.Calls(recordtest.CreateDepartment))

	for field, value := range map[string]string{"departmentName": "Legal", "maxClockIn": "08:30", "maxClockOut": "17:30"} {
		w, _ = c.do(t, http.MethodPatch, base+"/form/fields", map[string]string{"field": field, "value": value})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp = c.do(t, http.MethodPost, base+"/form/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Department created successfully", resp["message"])
	assert.Equal(t, 1, c.store.Calls(recordtest.CreateDepartment))
}

func TestForm_UnknownField(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)
	c.do(t, http.MethodPost, base+"/form", map[string]string{"kind": "departments"})

	w, _ := c.do(t, http.MethodPatch, base+"/form/fields", map[string]string{"field": "address", "value": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForm_OpenMissingRecord(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, resp := c.do(t, http.MethodPost, base+"/form", map[string]interface{}{"kind": "employees", "id": 99})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Failed to fetch employee: Employee not found", errorMessage(resp))
}

func TestAttendance_CheckOutFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"not found", http.StatusNotFound, `{"error":"Attendance not found"}`, http.StatusNotFound, "Attendance ID is invalid"},
		{"bad request", http.StatusBadRequest, `{"error":"Already checked out"}`, http.StatusBadRequest, "Bad request: Please check your input"},
		{"server error", http.StatusInternalServerError, `{"error":"database locked"}`, http.StatusBadGateway, "database locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConsole(t)
			base := c.newSession(t)
			c.store.Fail(recordtest.CheckOut, tt.status, tt.body)

			c.do(t, http.MethodPut, base+"/attendance/mode", map[string]string{"mode": "checkout"})
			c.do(t, http.MethodPatch, base+"/attendance/fields", map[string]string{"field": "attendance_id", "value": "ATT-001"})
			c.do(t, http.MethodPatch, base+"/attendance/fields", map[string]string{"field": "clock_out", "value": "2024-01-10T17:00"})

			// Act
			w, resp := c.do(t, http.MethodPost, base+"/attendance/submit", nil)

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(resp))
		})
	}
}

func TestAttendance_CheckIn(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, resp := c.do(t, http.MethodPost, base+"/attendance/mount", nil)
	require.Equal(t, http.StatusOK, w.Code)
	options := resp["data"].(map[string]interface{})["employee_options"].([]interface{})
	require.Len(t, options, 1)

	c.do(t, http.MethodPatch, base+"/attendance/fields", map[string]string{"field": "employee", "value": "1"})
	c.do(t, http.MethodPatch, base+"/attendance/fields", map[string]string{"field": "clock_in", "value": "2024-01-11T08:00"})
	w, resp = c.do(t, http.MethodPost, base+"/attendance/submit", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Check-in successful", resp["message"])
	assert.JSONEq(t, `{"employee_id":"EMP-001","clock_in":"2024-01-11 08:00:00"}`, c.store.LastBody(recordtest.CheckIn))
}

func TestAttendance_UnknownMode(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)

	w, _ := c.do(t, http.MethodPut, base+"/attendance/mode", map[string]string{"mode": "lunch"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvents_StreamsNotifications(t *testing.T) {
	c := newConsole(t)
	base := c.newSession(t)
	c.store.Fail(recordtest.ListEmployees, http.StatusInternalServerError, `{"error":"db down"}`)

	server := httptest.NewServer(c.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+base+"/events", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var event, data string
		for {
			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			case line == "":
				return event, data
			}
		}
	}

	event, _ := readEvent()
	require.Equal(t, "connected", event)

	w, _ := c.do(t, http.MethodPost, base+"/list/mount", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	event, data := readEvent()
	assert.Equal(t, session.EventNotification, event)
	assert.JSONEq(t, `"Failed to fetch employees"`, mustField(t, data, "message"))
	assert.JSONEq(t, `"error"`, mustField(t, data, "level"))
}

func mustField(t *testing.T, data, key string) string {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(data), &fields))
	return string(fields[key])
}
