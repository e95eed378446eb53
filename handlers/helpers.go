package handlers

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/roteirolab/roteiro-backend/errors"
)

// bindJSONOrError binds the request body into obj, attaching a validation
// error and returning false when the payload is malformed.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}
