package http

import (
	"github.com/gin-gonic/gin"

	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/log"
)

// Handler is the public interface for the notify HTTP delivery layer.
type Handler interface {
	Notify(c *gin.Context)
	Interact(c *gin.Context)
}

type handler struct {
	l             log.Logger
	uc            notify.UseCase
	signingSecret string
}

// New creates a new HTTP handler. An empty signingSecret skips Slack request verification.
func New(l log.Logger, uc notify.UseCase, signingSecret string) *handler {
	return &handler{
		l:             l,
		uc:            uc,
		signingSecret: signingSecret,
	}
}
