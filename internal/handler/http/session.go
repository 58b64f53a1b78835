package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
	"github.com/go-chi/chi/v5"
)

// SessionHandler defines the session handler interface
type SessionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)

	// SSE
	Events(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	registry  *session.Registry
	hub       *sse.Hub
	keepalive time.Duration
}

type SessionCreatedResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *session.Registry, hub *sse.Hub) SessionHandler {
	return &sessionHandlerImpl{
		registry:  registry,
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// currentSession returns the session resolved by middleware.SessionRequired.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, session.ErrSessionNotFound)
		return nil, false
	}
	return s, true
}

// Create starts a console session
func (h *sessionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	s := h.registry.Create()
	response.Created(w, "Session created", SessionCreatedResponse{SessionID: s.ID, CreatedAt: s.CreatedAt})
}

// End discards a console session and its controllers
func (h *sessionHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.End(chi.URLParam(r, middleware.SessionParam)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Session ended", nil)
}

// Events streams the session's notifications
func (h *sessionHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(s.ID)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"session_id\":\"%s\"}\n\n", s.ID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Failed to encode stream event", "session_id", s.ID, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
