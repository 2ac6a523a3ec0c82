package http

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"dining-concierge/internal/common/errors"
)

// WriteError renders err as {"error": StandardError} with the status from
// errors.HTTPStatus. Errors outside the StandardError scheme are reported
// as INTERNAL_ERROR without details.
func WriteError(c *gin.Context, err error) {
	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		stdErr = &errors.StandardError{Code: errors.ErrCodeInternal, Message: "Internal error"}
	}
	c.JSON(errors.HTTPStatus(err), gin.H{"error": stdErr})
}
