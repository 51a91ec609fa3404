package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    dto.ErrorCode
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d (%s): %s [%s]", e.Status, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the status to the matching application error so callers
// can use errors.Is with apperrors sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case e.Status == http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case e.Code == dto.ErrorCodeValidationFailed:
		return apperrors.ErrValidationFailed
	case e.Code == dto.ErrorCodeResourceAlreadyExists, e.Code == dto.ErrorCodeConflict:
		return apperrors.ErrConflict
	case e.Status == http.StatusBadRequest:
		return apperrors.ErrBadRequest
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body dto.ErrorResponse
	if json.Unmarshal(raw, &body) != nil {
		return apiErr
	}
	if body.Message != "" {
		apiErr.Message = body.Message
	}
	if body.Error != nil {
		apiErr.Code = body.Error.Code
		apiErr.Field = body.Error.Field
		if body.Error.Message != "" {
			apiErr.Message = body.Error.Message
		}
	}
	return apiErr
}
