package notify

import "github.com/cmlabs-hris/hris-console/internal/pkg/validator"

// ServerText says how a record store message combines with a catalog text.
type ServerText int

const (
	// ServerIgnore always uses the catalog text.
	ServerIgnore ServerText = iota
	// ServerReplace uses the server message when present, else the catalog text.
	ServerReplace
	// ServerAppend writes "<catalog text>: <server message>" when a server message is present.
	ServerAppend
)

// Catalog holds the messages of one user action.
type Catalog struct {
	Success       string
	SuccessServer ServerText

	Failure       string
	FailureServer ServerText

	// NotFound and BadRequest replace the generic failure for that kind when set.
	NotFound   string
	BadRequest string
}

// SuccessMessage renders the success toast for an action the store confirmed with serverMsg.
func (c Catalog) SuccessMessage(serverMsg string) string {
	return combine(c.Success, serverMsg, c.SuccessServer)
}

// Fail classifies err and wraps it with its one-line message.
func (c Catalog) Fail(err error) *Error {
	kind := Classify(err)
	return &Error{Kind: kind, Message: c.FailureMessage(err), Err: err}
}

// FailureMessage renders the failure toast for err.
func (c Catalog) FailureMessage(err error) string {
	switch Classify(err) {
	case KindValidation:
		first, _ := validator.First(err)
		return first.Message
	case KindNotFound:
		if c.NotFound != "" {
			return c.NotFound
		}
	case KindBadRequest:
		if c.BadRequest != "" {
			return c.BadRequest
		}
	case KindNetwork:
		return c.Failure
	}
	return combine(c.Failure, serverMessage(err), c.FailureServer)
}

func combine(text, server string, mode ServerText) string {
	if server == "" {
		return text
	}
	switch mode {
	case ServerReplace:
		return server
	case ServerAppend:
		return text + ": " + server
	default:
		return text
	}
}

// Error is a failed action after classification. Message is the text shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
