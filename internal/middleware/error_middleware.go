package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/logger"
	"github.com/yigit/welearn/internal/pkg/validation"
)

// errorClass maps one base error onto its response
type errorClass struct {
	base    error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins.
var errorClasses = []errorClass{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request"},
	{apperrors.ErrConflict, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// ErrorDetailFor picks the status code and error body for err. Internal
// failures are reported without their cause.
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, dto.HandleValidationError(verrs)
	}

	for _, class := range errorClasses {
		if !errors.Is(err, class.base) {
			continue
		}

		detail := dto.NewErrorDetail(class.code, class.message).WithSeverity(dto.ErrorSeverityWarning)
		if ce, ok := apperrors.As(err); ok {
			detail.Message = ce.Error()
			detail.Field = ce.Field
			if ce.Code != "" {
				detail.Code = dto.ErrorCode(ce.Code)
			}
			if ce.StatusMsg != "" {
				detail = detail.WithDetails(ce.StatusMsg)
			}
		} else if msg := err.Error(); msg != "" {
			detail.Message = msg
		}
		return class.status, detail
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}
