package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/pkg/validation"
)

// BindJSON decodes and validates the request body into obj. On failure
// the error response has already been written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, validation.FromBinding(err))
		return false
	}
	return true
}
