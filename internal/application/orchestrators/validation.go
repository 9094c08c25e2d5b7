package orchestrators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// User-facing messages, keyed by form field.
const (
	msgInvalidDay      = "曜日は月〜金から選んでください"
	msgInvalidPeriod   = "時限は1〜7の数字で入力してください"
	msgEmptySubject    = "科目名を入力してください"
	msgInvalidColor    = "色はパレットから選んでください"
	msgInvalidYear     = "有効な学年を入力してください"
	msgInvalidSemester = "学期は前期か後期を選んでください"
)

var fieldMessages = map[string]string{
	"day":      msgInvalidDay,
	"period":   msgInvalidPeriod,
	"subject":  msgEmptySubject,
	"color":    msgInvalidColor,
	"year":     msgInvalidYear,
	"semester": msgInvalidSemester,
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of one submission.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateForm runs the struct tags on form and appends extra field errors.
// Returns nil when nothing was rejected.
func validateForm(form any, extra ...FieldError) error {
	errs := append([]FieldError(nil), extra...)

	if err := validate.Struct(form); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			field := strings.ToLower(fe.Field())
			errs = append(errs, FieldError{Field: field, Message: fieldMessages[field]})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

func fieldError(field string) FieldError {
	return FieldError{Field: field, Message: fieldMessages[field]}
}
