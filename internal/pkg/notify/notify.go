// Package notify turns action outcomes into one-line notifications and delivers them.
package notify

import (
	"context"
	"log/slog"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message, At: time.Now()}
}

func Failure(message string) Notification {
	return Notification{Level: LevelError, Message: message, At: time.Now()}
}

// Notifier delivers notifications. Implementations must not block on slow consumers.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to slog: successes at info, failures at warn.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "notification", "toast_level", n.Level, "toast_message", n.Message)
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(context.Context, Notification) {})
