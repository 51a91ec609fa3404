package apperrors

import "errors"

// Base errors. Every domain error wraps exactly one of these so that
// the HTTP layer can pick a status with errors.Is.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrValidationFailed   = errors.New("validation failed")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Token errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Post errors
var (
	ErrPostNotFound = &CustomError{Err: ErrResourceNotFound, Message: "post not found", Code: "RES_001"}
)

// Teacher errors
var (
	ErrTeacherNotFound       = &CustomError{Err: ErrResourceNotFound, Message: "teacher not found", Code: "RES_001"}
	ErrTeacherEmailExists    = &CustomError{Err: ErrConflict, Message: "a teacher with this email already exists", Field: "email", Code: "RES_002"}
	ErrTeacherHasDisciplines = &CustomError{Err: ErrConflict, Message: "teacher has disciplines and cannot be deleted", Code: "RES_004"}
)

// Student errors
var (
	ErrStudentNotFound    = &CustomError{Err: ErrResourceNotFound, Message: "student not found", Code: "RES_001"}
	ErrStudentEmailExists = &CustomError{Err: ErrConflict, Message: "a student with this email already exists", Field: "email", Code: "RES_002"}
	ErrStudentCodeExists  = &CustomError{Err: ErrConflict, Message: "a student with this studentId already exists", Field: "studentId", Code: "RES_002"}
)

// ErrLoginFailed hides whether the email or the password was wrong.
var ErrLoginFailed = &CustomError{Err: ErrInvalidCredentials, Message: "invalid email or password", Code: "AUTH_001"}

// Discipline errors
var (
	ErrDisciplineNotFound   = &CustomError{Err: ErrResourceNotFound, Message: "discipline not found", Code: "RES_001"}
	ErrDisciplineHasClasses = &CustomError{Err: ErrConflict, Message: "discipline has classes and cannot be deleted", Code: "RES_004"}
	ErrUnknownTeacher       = &CustomError{Err: ErrValidationFailed, Message: "teacherId does not reference an existing teacher", Field: "teacherId", Code: "VAL_001"}
)

// Class errors
var (
	ErrClassNotFound        = &CustomError{Err: ErrResourceNotFound, Message: "class not found", Code: "RES_001"}
	ErrUnknownDiscipline    = &CustomError{Err: ErrValidationFailed, Message: "disciplineId does not reference an existing discipline", Field: "disciplineId", Code: "VAL_001"}
	ErrClassEndBeforeStart  = &CustomError{Err: ErrValidationFailed, Message: "endDate must not be before startDate", Field: "endDate", Code: "VAL_001"}
	ErrClassStartDateNeeded = &CustomError{Err: ErrValidationFailed, Message: "startDate is required", Field: "startDate", Code: "VAL_001"}
)

// NewValidationError reports a single field that failed a constraint.
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
		Code:    "VAL_001",
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Field     string
	Code      string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithStatusMsg returns a copy with a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	c := *e
	c.StatusMsg = msg
	return &c
}

// As extracts the outermost CustomError from an error chain.
func As(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
