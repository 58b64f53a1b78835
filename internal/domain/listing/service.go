package listing

import (
	"context"
	"io"
)

type View struct {
	Collection        Collection `json:"collection"`
	Filters           Filters    `json:"filters"`
	Headers           []string   `json:"headers"`
	Rows              []Row      `json:"rows"`
	DepartmentOptions []Option   `json:"department_options"`
}

// Controller owns the listing page of one session.
type Controller interface {
	// Mount fetches every collection with the current filters.
	Mount(ctx context.Context) error

	SetActiveCollection(c Collection)

	// SetFilter changes one filter without fetching and reports whether it changed.
	SetFilter(key FilterKey, value string) (bool, error)

	// ApplyFilter sets a filter and, when it changed, re-fetches every collection.
	ApplyFilter(ctx context.Context, key FilterKey, value string) error

	// Refresh fetches the given collections concurrently. A failed fetch is notified and keeps that
	// collection's previous data; the returned error joins every failure.
	Refresh(ctx context.Context, collections ...Collection) error

	// DeleteRow deletes one department or employee and, on success, runs OnRowDeleted.
	DeleteRow(ctx context.Context, c Collection, id uint) error

	// OnRowDeleted re-fetches the collections that display data of a deleted c row.
	OnRowDeleted(ctx context.Context, c Collection) error

	View() View

	// ExportLogs writes the loaded attendance logs as a spreadsheet.
	ExportLogs(w io.Writer) error
}
