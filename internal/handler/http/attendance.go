package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mount(w http.ResponseWriter, r *http.Request)
	Snapshot(w http.ResponseWriter, r *http.Request)
	SetMode(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct{}

func NewAttendanceHandler() AttendanceHandler {
	return &attendanceHandlerImpl{}
}

// Mount loads the employee options of the check-in form.
func (h *attendanceHandlerImpl) Mount(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := s.Attendance.Mount(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.Attendance.Snapshot())
}

// Snapshot implements AttendanceHandler.
func (h *attendanceHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Attendance.Snapshot())
}

// SetMode switches between check-in and check-out.
func (h *attendanceHandlerImpl) SetMode(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req attendance.SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	mode, err := attendance.ParseMode(req.Mode)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	s.Attendance.SetMode(mode)
	response.Success(w, s.Attendance.Snapshot())
}

// UpdateField implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req attendance.UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := s.Attendance.UpdateField(attendance.Field(req.Field), req.Value); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.Attendance.Snapshot())
}

// Submit sends the check-in or check-out of the active mode.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	message, err := s.Attendance.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, s.Attendance.Snapshot())
}
