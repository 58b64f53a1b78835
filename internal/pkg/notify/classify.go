package notify

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient"
	"github.com/cmlabs-hris/hris-console/internal/pkg/validator"
)

// Kind is the user-facing category of a failed action.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindBadRequest Kind = "bad_request"
	KindNetwork    Kind = "network"
	KindGeneric    Kind = "generic"
)

// Classify decides the Kind of err. The HTTP status decides first (404, 400); the server message is
// only consulted, case-insensitively, when the status is anything else.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	if _, ok := validator.First(err); ok {
		return KindValidation
	}

	var netErr *recordclient.NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	var remote *recordclient.RemoteError
	if !errors.As(err, &remote) {
		return KindGeneric
	}

	switch remote.StatusCode {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindBadRequest
	}

	msg := strings.ToLower(remote.ServerMessage())
	switch {
	case strings.Contains(msg, "not found"):
		return KindNotFound
	case strings.Contains(msg, "bad request"):
		return KindBadRequest
	default:
		return KindGeneric
	}
}

// serverMessage returns the record store's own message carried by err, if any.
func serverMessage(err error) string {
	var remote *recordclient.RemoteError
	if errors.As(err, &remote) {
		return remote.ServerMessage()
	}
	return ""
}
