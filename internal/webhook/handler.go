package webhook

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"repo-event-relay/pkg/metrics"
	pkgResponse "repo-event-relay/pkg/response"
)

// HandleGitHubWebhook stores a GitHub delivery and forwards it to the notification service.
// @Summary GitHub webhook
// @Description Normalize a GitHub delivery, append it to the event store and forward it to /notify
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "GitHub event type"
// @Param X-Hub-Signature-256 header string false "HMAC signature"
// @Success 200 {object} response.StatusResp
// @Failure 400 {object} response.ErrorResp
// @Failure 401 {object} response.ErrorResp
// @Failure 429 {object} response.ErrorResp
// @Failure 500 {object} response.ErrorResp
// @Router /webhook/github [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	clientIP := c.ClientIP()

	if err := h.security.ValidateIPAddress(clientIP); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusForbidden, err.Error())
		return
	}

	if err := h.security.CheckRateLimit(clientIP); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusTooManyRequests, err.Error())
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "%s: read body: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.security.ValidateSignature(body, c.GetHeader(HeaderSignature)); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusUnauthorized, err.Error())
		return
	}

	payload, err := extractPayload(c.GetHeader("Content-Type"), body)
	if err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	eventType := c.GetHeader(HeaderEvent)
	if eventType == "" {
		eventType = "unknown"
	}

	event, err := h.normalizer.Normalize(payload, eventType)
	if err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Append(ctx, event); err != nil {
		h.metrics.StoreAppend(metrics.StatusError)
		h.l.Errorf(ctx, "%s: append event: %v", LogPrefixHandle, err)
		pkgResponse.ErrorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.StoreAppend(metrics.StatusOK)
	h.metrics.WebhookEvent(event.DisplayType())

	h.l.Infof(ctx, "%s: stored %s/%s on %s (delivery %s)",
		LogPrefixHandle, event.DisplayType(), event.Action, event.RepositoryFullName, c.GetHeader(HeaderDelivery))

	if h.notifier != nil {
		// The delivery is already stored, so a failed forward is only logged.
		if err := h.notifier.Forward(context.WithoutCancel(ctx), event); err != nil {
			h.l.Warnf(ctx, "%s: failed to notify: %v", LogPrefixHandle, err)
		}
	}

	pkgResponse.Status(c, StatusReceived)
}

// extractPayload returns the JSON document from either delivery content type.
func extractPayload(contentType string, body []byte) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/x-www-form-urlencoded" {
		return body, nil
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	payload := form.Get("payload")
	if payload == "" {
		return nil, ErrInvalidPayload
	}
	return []byte(payload), nil
}
