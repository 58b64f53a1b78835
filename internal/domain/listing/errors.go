package listing

import "errors"

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownFilter     = errors.New("unknown filter")
	ErrNotDeletable      = errors.New("rows of this collection cannot be deleted")
)
