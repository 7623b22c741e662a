package webhook

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the GitHub listener at POST /webhook/github.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.POST("/webhook/github", h.HandleGitHubWebhook)
}
