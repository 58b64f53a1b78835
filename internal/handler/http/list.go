package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/cmlabs-hris/hris-console/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type ListHandler interface {
	Mount(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
	SetCollection(w http.ResponseWriter, r *http.Request)
	ApplyFilter(w http.ResponseWriter, r *http.Request)
	DeleteRow(w http.ResponseWriter, r *http.Request)
	ExportLogs(w http.ResponseWriter, r *http.Request)
}

type listHandlerImpl struct{}

func NewListHandler() ListHandler {
	return &listHandlerImpl{}
}

// Mount fetches every collection for the session's listing page.
func (h *listHandlerImpl) Mount(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := s.List.Mount(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.List.View())
}

// View implements ListHandler.
func (h *listHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.List.View())
}

// SetCollection switches the visible table without fetching.
func (h *listHandlerImpl) SetCollection(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req listing.SetCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	c, err := listing.ParseCollection(req.Collection)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	s.List.SetActiveCollection(c)
	response.Success(w, s.List.View())
}

// ApplyFilter sets a log filter and re-fetches when it changed.
func (h *listHandlerImpl) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req listing.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := s.List.ApplyFilter(r.Context(), listing.FilterKey(req.Key), req.Value); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.List.View())
}

// DeleteRow deletes a department or employee and refreshes the tables that show it.
func (h *listHandlerImpl) DeleteRow(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	c, err := listing.ParseCollection(chi.URLParam(r, "kind"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil {
		response.BadRequest(w, "Invalid row ID", nil)
		return
	}

	if err := s.List.DeleteRow(r.Context(), c, uint(id)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Row deleted", s.List.View())
}

// ExportLogs downloads the current attendance logs as a spreadsheet.
func (h *listHandlerImpl) ExportLogs(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.List.ExportLogs(&buf); err != nil {
		slog.Error("Failed to export attendance logs", "session_id", s.ID, "error", err)
		response.InternalServerError(w, "Failed to export attendance logs")
		return
	}

	filename := export.LogFileName(s.List.View().Filters.LogFilter())
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
