// Package recordtest runs an in-memory record store over HTTP for tests.
package recordtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/department"
	"github.com/cmlabs-hris/hris-console/internal/domain/employee"
	"github.com/go-chi/chi/v5"
)

// Route keys, as counted by Calls.
const (
	ListDepartments  = "GET /departements"
	GetDepartment    = "GET /departement/{id}"
	CreateDepartment = "POST /departement"
	UpdateDepartment = "PATCH /departement/{id}"
	DeleteDepartment = "DELETE /departement/{id}"
	ListEmployees    = "GET /employees"
	GetEmployee      = "GET /employee/{id}"
	CreateEmployee   = "POST /employee"
	UpdateEmployee   = "PATCH /employee/{id}"
	DeleteEmployee   = "DELETE /employee/{id}"
	CheckIn          = "POST /attendance"
	CheckOut         = "PUT /attendance/{code}"
	ListLogs         = "GET /attendance/logs"
)

type failure struct {
	status int
	body   string
}

type logRow struct {
	entry        attendance.LogEntry
	departmentID uint
}

// Store is a fake record store. It serves the same paths and envelope as the real one.
type Store struct {
	mu          sync.Mutex
	server      *httptest.Server
	departments map[uint]department.Department
	employees   map[uint]employee.Employee
	logs        []logRow
	nextDept    uint
	nextEmp     uint
	calls       map[string]int
	queries     map[string]string
	bodies      map[string]string
	failures    map[string]failure
}

// NewStore starts a store that is shut down when t finishes.
func NewStore(t testing.TB) *Store {
	s := &Store{
		departments: make(map[uint]department.Department),
		employees:   make(map[uint]employee.Employee),
		calls:       make(map[string]int),
		queries:     make(map[string]string),
		bodies:      make(map[string]string),
		failures:    make(map[string]failure),
	}

	r := chi.NewRouter()
	r.Get("/departements", s.route(ListDepartments, s.listDepartments))
	r.Post("/departement", s.route(CreateDepartment, s.createDepartment))
	r.Get("/departement/{id}", s.route(GetDepartment, s.getDepartment))
	r.Patch("/departement/{id}", s.route(UpdateDepartment, s.updateDepartment))
	r.Delete("/departement/{id}", s.route(DeleteDepartment, s.deleteDepartment))
	r.Get("/employees", s.route(ListEmployees, s.listEmployees))
	r.Post("/employee", s.route(CreateEmployee, s.createEmployee))
	r.Get("/employee/{id}", s.route(GetEmployee, s.getEmployee))
	r.Patch("/employee/{id}", s.route(UpdateEmployee, s.updateEmployee))
	r.Delete("/employee/{id}", s.route(DeleteEmployee, s.deleteEmployee))
	r.Post("/attendance", s.route(CheckIn, s.checkIn))
	r.Get("/attendance/logs", s.route(ListLogs, s.listLogs))
	r.Put("/attendance/{code}", s.route(CheckOut, s.checkOut))

	s.server = httptest.NewServer(r)
	t.Cleanup(s.server.Close)
	return s
}

// URL is the base URL to hand to recordclient.New.
func (s *Store) URL() string {
	return s.server.URL
}

// Close stops the server; later calls fail with a network error.
func (s *Store) Close() {
	s.server.Close()
}

func (s *Store) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// LastQuery is the raw query string of the latest call to route.
func (s *Store) LastQuery(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[route]
}

// LastBody is the raw request body of the latest call to route.
func (s *Store) LastBody(route string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[route]
}

// Fail makes every following call to route answer with status and body.
func (s *Store) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Store) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Store) SeedDepartment(d department.Department) department.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		s.nextDept++
		d.ID = s.nextDept
	} else if d.ID > s.nextDept {
		s.nextDept = d.ID
	}
	s.departments[d.ID] = d
	return d
}

func (s *Store) SeedEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		s.nextEmp++
		e.ID = s.nextEmp
	} else if e.ID > s.nextEmp {
		s.nextEmp = e.ID
	}
	if e.EmployeeCode == "" {
		e.EmployeeCode = fmt.Sprintf("EMP-%03d", e.ID)
	}
	s.employees[e.ID] = e
	return e
}

// SeedLog adds a log entry belonging to departmentID.
func (s *Store) SeedLog(entry attendance.LogEntry, departmentID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == 0 {
		entry.ID = uint(len(s.logs) + 1)
	}
	s.logs = append(s.logs, logRow{entry: entry, departmentID: departmentID})
}

func (s *Store) Department(id uint) (department.Department, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.departments[id]
	return d, ok
}

func (s *Store) Employee(id uint) (employee.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	return e, ok
}

func (s *Store) Logs() []attendance.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendance.LogEntry, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, l.entry)
	}
	return out
}

// route counts the call, records its query and body, and applies an injected failure.
func (s *Store) route(key string, next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw []byte
		if r.Body != nil {
			raw, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}

		s.mu.Lock()
		s.calls[key]++
		s.queries[key] = r.URL.RawQuery
		s.bodies[key] = string(raw)
		f, failing := s.failures[key]
		s.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, map[string]interface{}{"message": message, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	return uint(id), err == nil
}

func (s *Store) listDepartments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]department.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeData(w, http.StatusOK, "Departments retrieved successfully", out)
}

func (s *Store) getDepartment(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	d, ok := s.Department(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	writeData(w, http.StatusOK, "Department retrieved successfully", d)
}

func (s *Store) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpsertRequest
	if err := decodeBody(r, &req); err != nil || req.DepartmentName == "" {
		writeError(w, http.StatusBadRequest, "Department Name cannot be empty!")
		return
	}
	d := s.SeedDepartment(department.Department{
		DepartmentName:  req.DepartmentName,
		MaxClockInTime:  withSeconds(req.MaxClockInTimeStr),
		MaxClockOutTime: withSeconds(req.MaxClockOutTimeStr),
	})
	writeData(w, http.StatusCreated, "Department created successfully", d)
}

func (s *Store) updateDepartment(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	var req department.UpsertRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	d, ok := s.departments[id]
	if ok {
		if req.DepartmentName != "" {
			d.DepartmentName = req.DepartmentName
		}
		if req.MaxClockInTimeStr != "" {
			d.MaxClockInTime = withSeconds(req.MaxClockInTimeStr)
		}
		if req.MaxClockOutTimeStr != "" {
			d.MaxClockOutTime = withSeconds(req.MaxClockOutTimeStr)
		}
		s.departments[id] = d
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	writeData(w, http.StatusOK, "Department updated successfully", d)
}

func (s *Store) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	s.mu.Lock()
	_, ok := s.departments[id]
	delete(s.departments, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Department not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Department deleted successfully"})
}

func (s *Store) withDepartment(e employee.Employee) employee.Employee {
	if d, ok := s.departments[e.DepartmentID]; ok {
		e.Department = d
	}
	return e
}

func (s *Store) listEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, s.withDepartment(e))
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeData(w, http.StatusOK, "Employees retrieved successfully", out)
}

func (s *Store) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	s.mu.Lock()
	e, ok := s.employees[id]
	if ok {
		e = s.withDepartment(e)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	writeData(w, http.StatusOK, "Employee retrieved successfully", e)
}

func (s *Store) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpsertRequest
	if err := decodeBody(r, &req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Bad request: Please check your input!")
		return
	}
	if _, ok := s.Department(req.DepartmentID); !ok {
		writeError(w, http.StatusBadRequest, "Department not found")
		return
	}
	e := s.SeedEmployee(employee.Employee{
		EmployeeCode: req.EmployeeCode,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Address:      req.Address,
	})
	writeData(w, http.StatusCreated, "Employee created successfully", e)
}

func (s *Store) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	var req employee.UpsertRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	e, ok := s.employees[id]
	if ok {
		if req.DepartmentID != 0 {
			e.DepartmentID = req.DepartmentID
		}
		if req.Name != "" {
			e.Name = req.Name
		}
		if req.Address != "" {
			e.Address = req.Address
		}
		if req.EmployeeCode != "" {
			e.EmployeeCode = req.EmployeeCode
		}
		s.employees[id] = e
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	writeData(w, http.StatusOK, "Employee updated successfully", e)
}

func (s *Store) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	s.mu.Lock()
	_, ok := s.employees[id]
	delete(s.employees, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}

func (s *Store) checkIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	clockIn, err := time.Parse(attendance.TimestampLayout, req.ClockIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clock_in")
		return
	}

	s.mu.Lock()
	var found *employee.Employee
	for _, e := range s.employees {
		if e.EmployeeCode == req.EmployeeCode {
			e := e
			found = &e
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}
	id := uint(len(s.logs) + 1)
	code := fmt.Sprintf("ATT-%03d", id)
	s.logs = append(s.logs, logRow{
		entry: attendance.LogEntry{
			ID:             id,
			EmployeeCode:   found.EmployeeCode,
			AttendanceCode: code,
			Name:           found.Name,
			DateAttendance: clockIn.Format("2006-01-02"),
			AttendanceType: attendance.TypeIn,
			Department:     s.departments[found.DepartmentID].DepartmentName,
			ClockIn:        clockIn.Format("15:04:05"),
		},
		departmentID: found.DepartmentID,
	})
	s.mu.Unlock()

	rec := attendance.Record{
		ID:             id,
		EmployeeCode:   found.EmployeeCode,
		AttendanceCode: code,
		ClockIn:        clockIn,
	}
	writeData(w, http.StatusCreated, "Check-in successful", rec)
}

func (s *Store) checkOut(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req attendance.CheckOutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	clockOut, err := time.Parse(attendance.TimestampLayout, req.ClockOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad request: invalid clock_out")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		entry := &s.logs[i].entry
		if entry.AttendanceCode != code {
			continue
		}
		if entry.ClockOut != "" {
			writeError(w, http.StatusBadRequest, "Already checked out")
			return
		}
		entry.ClockOut = clockOut.Format("15:04:05")
		entry.AttendanceType = attendance.TypeOut
		clockIn, _ := time.Parse(attendance.TimestampLayout, entry.DateAttendance+" "+entry.ClockIn)
		writeData(w, http.StatusOK, "Check-out successful", attendance.Record{
			ID:             entry.ID,
			EmployeeCode:   entry.EmployeeCode,
			AttendanceCode: entry.AttendanceCode,
			ClockIn:        clockIn,
			ClockOut:       &clockOut,
		})
		return
	}
	writeError(w, http.StatusNotFound, "Attendance not found")
}

func (s *Store) listLogs(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	dept := r.URL.Query().Get("department_id")

	s.mu.Lock()
	out := make([]attendance.LogEntry, 0, len(s.logs))
	for _, l := range s.logs {
		if date != "" && l.entry.DateAttendance != date {
			continue
		}
		if dept != "" && strconv.FormatUint(uint64(l.departmentID), 10) != dept {
			continue
		}
		out = append(out, l.entry)
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, "Attendance logs retrieved successfully", out)
}

// withSeconds stores HH:MM thresholds as HH:MM:SS, like a TIME column.
func withSeconds(hhmm string) string {
	if len(hhmm) == len("15:04") {
		return hhmm + ":00"
	}
	return hhmm
}
