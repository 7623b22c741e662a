package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the pipeline endpoints. Slack and the webhook listener call these
// directly, so they sit outside any API prefix.
func RegisterRoutes(r gin.IRouter, h Handler) {
	r.POST("/notify", h.Notify)
	r.POST("/slack/interact", h.Interact)
}
