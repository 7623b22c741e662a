package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"

	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/slack"
)

// processNotifyReq binds the /notify JSON body.
func (h *handler) processNotifyReq(c *gin.Context) (notifyReq, error) {
	var req notifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", notify.ErrInvalidPayload, err)
	}
	if req == nil {
		return nil, notify.ErrInvalidPayload
	}
	return req, nil
}

// processInteractReq verifies the Slack signature over the raw body, then decodes the
// JSON document carried in the "payload" form field.
func (h *handler) processInteractReq(c *gin.Context) (interactReq, error) {
	var req interactReq

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return req, fmt.Errorf("%w: %v", notify.ErrInvalidPayload, err)
	}

	if h.signingSecret != "" {
		if err := slack.VerifyRequest(c.Request.Header, body, h.signingSecret); err != nil {
			return req, err
		}
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return req, fmt.Errorf("%w: %v", notify.ErrInvalidPayload, err)
	}
	raw := form.Get("payload")
	if raw == "" {
		return req, notify.ErrNoPayload
	}

	if err := json.Unmarshal([]byte(raw), &req.Payload); err != nil {
		return req, fmt.Errorf("%w: %v", notify.ErrInvalidPayload, err)
	}
	return req, req.validate()
}
