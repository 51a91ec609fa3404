package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorsWrapBase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		base error
	}{
		{"post not found", ErrPostNotFound, ErrResourceNotFound},
		{"teacher email", ErrTeacherEmailExists, ErrConflict},
		{"student code", ErrStudentCodeExists, ErrConflict},
		{"login failed", ErrLoginFailed, ErrInvalidCredentials},
		{"unknown teacher", ErrUnknownTeacher, ErrValidationFailed},
		{"discipline restrict", ErrDisciplineHasClasses, ErrConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("repo: %w", tc.err)
			assert.True(t, errors.Is(wrapped, tc.base))
			assert.True(t, errors.Is(wrapped, tc.err))
		})
	}
}

func TestWithStatusMsgDoesNotMutateShared(t *testing.T) {
	c := ErrPostNotFound.WithStatusMsg("requires role teacher")
	assert.Equal(t, "requires role teacher", c.StatusMsg)
	assert.Empty(t, ErrPostNotFound.StatusMsg)
	assert.True(t, errors.Is(c, ErrResourceNotFound))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewValidationError("title", "title is required"))
	ce, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "title", ce.Field)
	assert.Equal(t, "title is required", err.Error()[len("wrap: "):])

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrConflict))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
