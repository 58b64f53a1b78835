package attendance

import "errors"

var (
	ErrUnknownMode  = errors.New("unknown attendance mode")
	ErrUnknownField = errors.New("field does not belong to this attendance mode")
)
