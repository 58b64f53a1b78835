package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-console/internal/domain/form"
	"github.com/cmlabs-hris/hris-console/internal/handler/http/response"
)

type FormHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	Snapshot(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type formHandlerImpl struct{}

func NewFormHandler() FormHandler {
	return &formHandlerImpl{}
}

// Open starts a create form, or an edit form for an existing record when an ID is given.
func (h *formHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req form.OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	kind, err := form.ParseKind(req.Kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.ID != nil {
		err = s.Form.Open(r.Context(), kind, *req.ID)
	} else {
		err = s.Form.Initialize(r.Context(), kind, nil)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.Form.Snapshot())
}

// Snapshot implements FormHandler.
func (h *formHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	response.Success(w, s.Form.Snapshot())
}

// UpdateField edits one input of the open form. Nothing is validated until submit.
func (h *formHandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req form.UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := s.Form.UpdateField(form.Field(req.Field), req.Value); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s.Form.Snapshot())
}

// Submit validates the open form and creates or updates the record.
func (h *formHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := s.Form.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// Close discards the open form.
func (h *formHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	s.Form.Close()
	response.SuccessWithMessage(w, "Form closed", nil)
}
