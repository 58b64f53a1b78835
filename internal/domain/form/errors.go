package form

import "errors"

var (
	ErrUnknownKind      = errors.New("unknown form kind")
	ErrUnknownField     = errors.New("field does not belong to this form")
	ErrOriginalMismatch = errors.New("original record does not match form kind")
	ErrNotOpen          = errors.New("no form is open")
)
