package form

import (
	"context"

	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
)

// Outcome tells the caller where to go after a successful submit.
type Outcome string

const (
	OutcomeRefreshList    Outcome = "refresh_list"
	OutcomeNavigateToList Outcome = "navigate_to_list"
)

type SubmitResult struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

type Snapshot struct {
	Open              bool             `json:"open"`
	Kind              Kind             `json:"kind,omitempty"`
	EditMode          bool             `json:"edit_mode"`
	RecordID          uint             `json:"record_id,omitempty"`
	Title             string           `json:"title,omitempty"`
	Fields            map[Field]string `json:"fields,omitempty"`
	DepartmentOptions []listing.Option `json:"department_options,omitempty"`
}

// Controller owns the create/edit form of one session.
type Controller interface {
	// Initialize opens an empty create form, or an edit form projected from original.
	Initialize(ctx context.Context, kind Kind, original Original) error

	// Open fetches the record by id and initializes an edit form for it.
	Open(ctx context.Context, kind Kind, id uint) error

	// UpdateField changes one field. It performs no validation.
	UpdateField(field Field, value string) error

	// Submit validates, sends the create or update and reports where to go next.
	// A validation failure sends nothing.
	Submit(ctx context.Context) (SubmitResult, error)

	Snapshot() Snapshot

	// Close discards the form.
	Close()
}
