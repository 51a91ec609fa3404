package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/pkg/apperrors"
)

// parseIDParam parses an ID parameter from the request path. Non-positive
// ids parse fine and are reported as not found by the services.
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(paramName, paramName+" must be a number")
	}
	return id, nil
}
