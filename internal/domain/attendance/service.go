package attendance

import (
	"context"
)

// EmployeeOption is a selectable employee. ID is the canonical identity; Code is what check-in sends.
type EmployeeOption struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Snapshot struct {
	Form            Form             `json:"form"`
	EmployeeOptions []EmployeeOption `json:"employee_options"`
	OptionsLoaded   bool             `json:"options_loaded"`
	// LastRecord is the attendance echoed by the latest successful submit, if the store sent one.
	LastRecord *Record `json:"last_record,omitempty"`
}

// Controller is the check-in / check-out form of one session.
type Controller interface {
	// Mount loads the employee options. A failure is notified and leaves the options empty.
	Mount(ctx context.Context) error

	// SetMode switches between check-in and check-out, keeping the other mode's inputs.
	SetMode(mode Mode)

	// UpdateField edits a field of the active mode without validating it.
	UpdateField(field Field, value string) error

	// Submit validates and sends the active mode's action and returns the success message.
	// Every outcome is also notified.
	Submit(ctx context.Context) (string, error)

	Snapshot() Snapshot
}
