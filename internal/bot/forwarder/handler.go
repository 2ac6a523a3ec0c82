package forwarder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dining-concierge/internal/common/errors"
	httpx "dining-concierge/internal/common/http"
	"dining-concierge/internal/models"
)

// HandleChat serves POST /v1/chat. Only the first message is forwarded.
func HandleChat(f *Forwarder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteError(c, errors.NewInvalidRequestError(err.Error()))
			return
		}

		text := req.Messages[0].Unstructured.Text
		if text == "" {
			httpx.WriteError(c, errors.NewInvalidRequestError("messages[0].unstructured.text is required"))
			return
		}

		resp, err := f.Forward(c.Request.Context(), text)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
