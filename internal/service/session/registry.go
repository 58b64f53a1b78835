// Package session keeps one set of console controllers per browser session.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/form"
	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/sse"
	attendancesvc "github.com/cmlabs-hris/hris-console/internal/service/attendance"
	formsvc "github.com/cmlabs-hris/hris-console/internal/service/form"
	listingsvc "github.com/cmlabs-hris/hris-console/internal/service/listing"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// EventNotification is the stream event name a toast is published under.
const EventNotification = "notification"

// Records is everything the controllers of one session call on the record store.
type Records interface {
	formsvc.Records
	listingsvc.Records
	attendancesvc.Records
}

type Session struct {
	ID        string
	CreatedAt time.Time

	Form       form.Controller
	List       listing.Controller
	Attendance attendance.Controller
	Notifier   notify.Notifier

	lastSeen time.Time
}

type Options struct {
	// IdleTimeout is how long a session may go untouched before Sweep ends it. Zero keeps sessions forever.
	IdleTimeout time.Duration
	// Location interprets check-in and check-out timestamps.
	Location *time.Location
	Logger   *slog.Logger
	Now      func() time.Time
}

type Registry struct {
	records     Records
	hub         *sse.Hub
	logger      *slog.Logger
	location    *time.Location
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(records Records, hub *sse.Hub, opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		records:     records,
		hub:         hub,
		logger:      opts.Logger,
		location:    opts.Location,
		idleTimeout: opts.IdleTimeout,
		now:         opts.Now,
		sessions:    make(map[string]*Session),
	}
}

// Create starts a session with fresh controllers. Nothing is fetched until a controller is mounted.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	now := r.now()

	notifier := notify.Multi{
		notify.LogNotifier{Logger: r.logger.With(slog.String("session_id", id))},
		hubNotifier{hub: r.hub, sessionID: id},
	}
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		Form:       formsvc.NewFormController(r.records, notifier),
		List:       listingsvc.NewListController(r.records, notifier),
		Attendance: attendancesvc.NewAttendanceController(r.records, notifier, r.location),
		Notifier:   notifier,
		lastSeen:   now,
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info("session created", slog.String("session_id", id))
	return s
}

// Get returns the session and marks it active.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s, nil
}

// End discards the session and closes its notification streams.
func (r *Registry) End(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	r.closeStreams(id)
	r.logger.Info("session ended", slog.String("session_id", id))
	return nil
}

// Sweep ends every session idle for longer than the idle timeout.
func (r *Registry) Sweep(ctx context.Context) error {
	if r.idleTimeout <= 0 {
		return nil
	}
	cutoff := r.now().Add(-r.idleTimeout)

	var expired []string
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.closeStreams(id)
	}
	if len(expired) > 0 {
		r.logger.InfoContext(ctx, "idle sessions discarded", slog.Int("count", len(expired)))
	}
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) closeStreams(id string) {
	if r.hub != nil {
		r.hub.Drop(id)
	}
}

// LastSeen is the time of the latest Get or Create for the session.
func (r *Registry) LastSeen(id string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return time.Time{}, ErrSessionNotFound
	}
	return s.lastSeen, nil
}

// hubNotifier publishes toasts on the session's event stream.
type hubNotifier struct {
	hub       *sse.Hub
	sessionID string
}

func (h hubNotifier) Notify(_ context.Context, n notify.Notification) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(h.sessionID, sse.Event{Event: EventNotification, Data: n})
}
