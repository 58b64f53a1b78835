package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidationError is a single failed field check. Its message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Required returns a ValidationError for an empty field, e.g. "Department Name cannot be empty".
func Required(field, label string) ValidationError {
	return ValidationError{Field: field, Message: label + " cannot be empty"}
}

// Invalid returns a ValidationError for a malformed or unresolvable field.
func Invalid(field, label string) ValidationError {
	return ValidationError{Field: field, Message: label + " is invalid"}
}

// First returns the first field failure carried by err.
func First(err error) (ValidationError, bool) {
	var single ValidationError
	if errors.As(err, &single) {
		return single, true
	}
	var many ValidationErrors
	if errors.As(err, &many) && len(many) > 0 {
		return many[0], true
	}
	return ValidationError{}, false
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidTimeOfDay reports whether s is an "HH:MM" or "HH:MM:SS" time of day.
func IsValidTimeOfDay(s string) (time.Time, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var (
	engine     *playground.Validate
	engineOnce sync.Once
)

func structValidator() *playground.Validate {
	engineOnce.Do(func() {
		engine = playground.New()
		// Report fields by their form name (max_clock_in_time), not the Go or wire name.
		engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return engine
}

// Struct runs the `validate` tags of v and returns every failing field as ValidationErrors.
func Struct(v interface{}) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		label := humanize(fe.Field())
		switch fe.Tag() {
		case "required":
			errs = append(errs, Required(fe.Field(), label))
		default:
			errs = append(errs, Invalid(fe.Field(), label))
		}
	}
	return errs
}

// humanize turns max_clock_in_time into "Max Clock In Time".
func humanize(field string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(field, "_", " "))
}
