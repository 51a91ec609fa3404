package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yigit/welearn/internal/pkg/apperrors"
)

// Violation is one field that failed one constraint.
type Violation struct {
	Field   string `json:"field" example:"title"`
	Message string `json:"message" example:"title must be at least 5 characters"`
}

// Errors collects every violation found in a request. It unwraps to
// apperrors.ErrValidationFailed.
type Errors []Violation

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// Unwrap implements errors.Unwrap interface
func (e Errors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Fields lists the offending field names in report order.
func (e Errors) Fields() []string {
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field
	}
	return fields
}

// OrNil returns nil when no violation was collected.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// StringValidation checks a single named string field. Lengths are
// counted in characters after trimming surrounding whitespace.
type StringValidation struct {
	Field  string
	Value  string
	MinLen int
	MaxLen int
}

// NewStringValidation creates a new required string validation
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field: field,
		Value: value,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// Validate returns the first unmet constraint, or nil.
func (v *StringValidation) Validate() *Violation {
	value := strings.TrimSpace(v.Value)

	if value == "" {
		return &Violation{Field: v.Field, Message: v.Field + " is required"}
	}

	n := utf8.RuneCountInString(value)
	if v.MinLen > 0 && n < v.MinLen {
		return &Violation{Field: v.Field, Message: fmt.Sprintf("%s must be at least %d characters", v.Field, v.MinLen)}
	}

	if v.MaxLen > 0 && n > v.MaxLen {
		return &Violation{Field: v.Field, Message: fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen)}
	}

	return nil
}

// Collect runs each validation and gathers the violations.
func Collect(rules ...*StringValidation) Errors {
	var errs Errors
	for _, r := range rules {
		if violation := r.Validate(); violation != nil {
			errs = append(errs, *violation)
		}
	}
	return errs
}
