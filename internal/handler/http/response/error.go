package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/form"
	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/cmlabs-hris/hris-console/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
)

// HandleError maps console errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Failed user actions carry the message that was notified
	var failed *notify.Error
	if errors.As(err, &failed) {
		handleActionError(w, failed)
		return
	}

	if errors.Is(err, session.ErrSessionNotFound) {
		NotFound(w, "Session not found")
		return
	}

	// Check if it's a validation error
	if first, ok := validator.First(err); ok {
		ValidationError(w, first.Message, validationDetails(err))
		return
	}

	switch {
	// Form errors
	case errors.Is(err, form.ErrNotOpen):
		BadRequest(w, "No form is open", nil)
	case errors.Is(err, form.ErrUnknownKind),
		errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrOriginalMismatch):
		BadRequest(w, err.Error(), nil)

	// Listing errors
	case errors.Is(err, listing.ErrUnknownCollection),
		errors.Is(err, listing.ErrUnknownFilter),
		errors.Is(err, listing.ErrNotDeletable):
		BadRequest(w, err.Error(), nil)

	// Attendance errors
	case errors.Is(err, attendance.ErrUnknownMode),
		errors.Is(err, attendance.ErrUnknownField):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func handleActionError(w http.ResponseWriter, failed *notify.Error) {
	switch failed.Kind {
	case notify.KindValidation:
		ValidationError(w, failed.Message, validationDetails(failed.Err))
	case notify.KindNotFound:
		NotFound(w, failed.Message)
	case notify.KindBadRequest:
		BadRequest(w, failed.Message, nil)
	default:
		BadGateway(w, failed.Message)
	}
}

func validationDetails(err error) map[string]string {
	var many validator.ValidationErrors
	if errors.As(err, &many) {
		return many.ToMap()
	}
	if first, ok := validator.First(err); ok {
		return map[string]string{first.Field: first.Message}
	}
	return nil
}
