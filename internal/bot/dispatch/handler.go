package dispatch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dining-concierge/internal/common/errors"
	httpx "dining-concierge/internal/common/http"
	"dining-concierge/internal/models"
)

// HandleDialogHook serves POST /v1/dialog/hook.
func HandleDialogHook(d *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.ConversationEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			httpx.WriteError(c, errors.NewInvalidRequestError(err.Error()))
			return
		}

		resp, err := d.Dispatch(c.Request.Context(), &event)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
